package pkg

import "math"

// evalRange is the score, in pawns, at which the bar is completely filled.
const evalRange = 20

// EvalIndicator holds the last evaluation reported by the server. Positive
// scores favour white.
type EvalIndicator struct {
	score     float64
	listeners []func(float64)
}

func NewEvalIndicator() *EvalIndicator {
	return &EvalIndicator{}
}

func (e *EvalIndicator) SetEvaluation(score float64) {
	e.score = score
	for _, fn := range e.listeners {
		fn(score)
	}
}

func (e *EvalIndicator) Score() float64 {
	return e.score
}

func (e *EvalIndicator) Subscribe(fn func(float64)) {
	e.listeners = append(e.listeners, fn)
}

// BlackShare is the percentage of the bar given to black.
func (e *EvalIndicator) BlackShare() float64 {
	return BlackShare(e.score)
}

func BlackShare(score float64) float64 {
	share := (evalRange - math.Round(score)) * 2.5
	return math.Max(0, math.Min(100, share))
}

// FilledCells returns how many of n meter cells belong to white.
func FilledCells(score float64, n int) int {
	white := 100 - BlackShare(score)
	return int(math.Round(white / 100 * float64(n)))
}
