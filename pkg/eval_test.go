package pkg

import "testing"

func TestBlackShare(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{0, 50},
		{4, 40},
		{-4, 60},
		{0.4, 50},
		{0.6, 47.5},
		{20, 0},
		{35, 0},
		{-60, 100},
	}
	for _, tt := range tests {
		if got := BlackShare(tt.score); got != tt.want {
			t.Errorf("score %v: wanted %v got %v", tt.score, tt.want, got)
		}
	}
}

func TestFilledCells(t *testing.T) {
	if got := FilledCells(0, 8); got != 4 {
		t.Errorf("wanted 4 got %d", got)
	}
	if got := FilledCells(100, 8); got != 8 {
		t.Errorf("wanted 8 got %d", got)
	}
	if got := FilledCells(-100, 8); got != 0 {
		t.Errorf("wanted 0 got %d", got)
	}
}

func TestEvalIndicatorNotifies(t *testing.T) {
	e := NewEvalIndicator()
	var got []float64
	e.Subscribe(func(score float64) { got = append(got, score) })
	e.SetEvaluation(1.5)
	e.SetEvaluation(-3)
	if len(got) != 2 || got[1] != -3 || e.Score() != -3 {
		t.Errorf("unexpected notifications %v", got)
	}
	if e.BlackShare() != 57.5 {
		t.Errorf("wanted 57.5 got %v", e.BlackShare())
	}
}
