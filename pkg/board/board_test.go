package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const startPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func mustSquare(t *testing.T, id string) Square {
	t.Helper()
	sq, err := ParseSquare(id)
	if err != nil {
		t.Fatal(err)
	}
	return sq
}

func TestInitialize(t *testing.T) {
	b := New()
	b.Initialize()

	if got := b.FEN(); got != startPlacement {
		t.Errorf("wanted %s got %s", startPlacement, got)
	}

	tests := map[string]Piece{
		"e1": {King, White},
		"d8": {Queen, Black},
		"a1": {Rook, White},
		"g8": {Knight, Black},
		"c2": {Pawn, White},
		"e4": Empty,
	}
	for id, want := range tests {
		if got := b.Piece(mustSquare(t, id)); got != want {
			t.Errorf("%s: wanted %s got %s", id, want, got)
		}
	}

	occupied := 0
	for _, p := range b.Snapshot() {
		if !p.IsEmpty() {
			occupied++
		}
	}
	if occupied != 32 {
		t.Errorf("wanted 32 pieces got %d", occupied)
	}
}

func TestInitializeNotifiesEverySquare(t *testing.T) {
	b := New()
	seen := make(map[Square]bool)
	b.Subscribe(ObserverFunc(func(sq Square, p Piece) {
		seen[sq] = true
	}))
	b.Initialize()
	if len(seen) != NumSquares {
		t.Errorf("wanted %d notifications got %d", NumSquares, len(seen))
	}
}

func TestMoveRelocation(t *testing.T) {
	occupants := []Piece{Empty, {Pawn, Black}, {Queen, White}}
	for i := 0; i < NumSquares; i++ {
		for j := 0; j < NumSquares; j++ {
			if i == j {
				continue
			}
			for _, prev := range occupants {
				from, to := SquareAt(i), SquareAt(j)
				mover := Piece{Knight, White}

				b := New()
				b.Place(from, mover)
				b.Place(to, prev)
				if err := b.Move(from, to); err != nil {
					t.Fatalf("%s-%s: %s", from, to, err)
				}
				if !b.Piece(from).IsEmpty() {
					t.Errorf("%s-%s: source not empty", from, to)
				}
				if got := b.Piece(to); got != mover {
					t.Errorf("%s-%s: wanted %s got %s", from, to, mover, got)
				}
			}
		}
	}
}

func TestMoveErrors(t *testing.T) {
	b := New()
	b.Initialize()
	before := b.Snapshot()

	err := b.Move(mustSquare(t, "e4"), mustSquare(t, "e5"))
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("wanted ErrEmptySource got %v", err)
	}
	err = b.Move(mustSquare(t, "e2"), mustSquare(t, "e2"))
	if !errors.Is(err, ErrSameSquare) {
		t.Errorf("wanted ErrSameSquare got %v", err)
	}
	if err := b.CanMove(mustSquare(t, "e4"), mustSquare(t, "e5")); !errors.Is(err, ErrEmptySource) {
		t.Errorf("CanMove: wanted ErrEmptySource got %v", err)
	}
	if err := b.CanMove(mustSquare(t, "e2"), mustSquare(t, "e4")); err != nil {
		t.Errorf("CanMove: unexpected %v", err)
	}
	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Errorf("board mutated on failed move (-want +got):\n%s", diff)
	}
}

func TestObserverSeesEveryMutation(t *testing.T) {
	b := New()
	b.Initialize()

	var got []string
	b.Subscribe(ObserverFunc(func(sq Square, p Piece) {
		got = append(got, sq.ID()+"="+p.String())
	}))
	if err := b.Move(mustSquare(t, "e2"), mustSquare(t, "e4")); err != nil {
		t.Fatal(err)
	}
	want := []string{"e4=white PAWN", "e2=NULL"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestDiffAndLoadFEN(t *testing.T) {
	b := New()
	b.Initialize()

	diff, err := b.Diff(startPlacement)
	if err != nil {
		t.Fatal(err)
	}
	if len(diff) != 0 {
		t.Errorf("wanted no diff got %v", diff)
	}

	afterE4 := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	diff, err = b.Diff(afterE4)
	if err != nil {
		t.Fatal(err)
	}
	want := []Square{mustSquare(t, "e4"), mustSquare(t, "e2")}
	if d := cmp.Diff(want, diff); d != "" {
		t.Errorf("diff squares (-want +got):\n%s", d)
	}

	if err := b.LoadFEN(afterE4); err != nil {
		t.Fatal(err)
	}
	if got := b.FEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR" {
		t.Errorf("unexpected placement after load: %s", got)
	}

	if _, err := b.Diff("not a fen"); err == nil {
		t.Error("expected error for malformed fen")
	}
}

func TestPieceDescriptors(t *testing.T) {
	tests := []struct {
		p     Piece
		asset string
	}{
		{Piece{Queen, White}, "static/pieces/queen-w.svg"},
		{Piece{Knight, Black}, "static/pieces/knight-b.svg"},
		{Empty, ""},
	}
	for _, tt := range tests {
		if got := tt.p.Asset(); got != tt.asset {
			t.Errorf("wanted %s got %s", tt.asset, got)
		}
	}
	if Empty.Side != None {
		t.Errorf("empty marker must carry side none, got %s", Empty.Side)
	}
	if got := (Piece{King, White}).Symbol(); got != "♔" {
		t.Errorf("wanted ♔ got %s", got)
	}
}

func TestParseKindAndSide(t *testing.T) {
	k, err := ParseKind("queen")
	if err != nil || k != Queen {
		t.Errorf("wanted QUEEN got %s (%v)", k, err)
	}
	k, err = ParseKind("")
	if err != nil || k != NoKind {
		t.Errorf("wanted no kind got %s (%v)", k, err)
	}
	if _, err := ParseKind("DRAGON"); err == nil {
		t.Error("expected error for unknown kind")
	}

	s, err := ParseSide("WHITE")
	if err != nil || s != White {
		t.Errorf("wanted white got %s (%v)", s, err)
	}
	if _, err := ParseSide("green"); err == nil {
		t.Error("expected error for unknown side")
	}
}
