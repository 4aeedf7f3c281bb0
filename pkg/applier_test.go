package pkg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qnkhuat/gokeshterm/pkg/board"
	"go.uber.org/zap/zaptest"
)

func emptySession(t *testing.T, side board.Side) *Session {
	t.Helper()
	s := newTestSession(t, side)
	for i := 0; i < board.NumSquares; i++ {
		s.Board.Clear(board.SquareAt(i))
	}
	return s
}

func TestApplyNormal(t *testing.T) {
	s := newTestSession(t, board.White)
	a := NewApplier(s, zaptest.NewLogger(t))

	err := a.Apply(MoveEvent{HasMove: true, From: sq(t, "e2"), To: sq(t, "e4"), Side: board.White, Eval: 0.4})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Board.Piece(sq(t, "e2")).IsEmpty() {
		t.Error("e2 must be empty")
	}
	if got := s.Board.Piece(sq(t, "e4")); got != (board.Piece{Kind: board.Pawn, Side: board.White}) {
		t.Errorf("wanted white pawn on e4 got %s", got)
	}
	if s.Eval.Score() != 0.4 {
		t.Errorf("wanted eval 0.4 got %v", s.Eval.Score())
	}
}

func TestApplyEnPassant(t *testing.T) {
	s := emptySession(t, board.White)
	whitePawn := board.Piece{Kind: board.Pawn, Side: board.White}
	s.Board.Place(sq(t, "e5"), whitePawn)
	s.Board.Place(sq(t, "d5"), board.Piece{Kind: board.Pawn, Side: board.Black})

	a := NewApplier(s, zaptest.NewLogger(t))
	err := a.Apply(MoveEvent{Category: CategoryEnPassant, HasMove: true, From: sq(t, "e5"), To: sq(t, "d6"), Side: board.White})
	if err != nil {
		t.Fatal(err)
	}

	if got := s.Board.Piece(sq(t, "d6")); got != whitePawn {
		t.Errorf("wanted white pawn on d6 got %s", got)
	}
	for _, id := range []string{"e5", "d5"} {
		if !s.Board.Piece(sq(t, id)).IsEmpty() {
			t.Errorf("%s must be empty, holds %s", id, s.Board.Piece(sq(t, id)))
		}
	}
}

func TestApplyCastle(t *testing.T) {
	tests := []struct {
		side             board.Side
		kingFrom, kingTo string
		rookFrom, rookTo string
	}{
		{board.White, "e1", "g1", "h1", "f1"},
		{board.White, "e1", "c1", "a1", "d1"},
		{board.Black, "e8", "g8", "h8", "f8"},
		{board.Black, "e8", "c8", "a8", "d8"},
	}
	for _, tt := range tests {
		s := emptySession(t, board.White)
		king := board.Piece{Kind: board.King, Side: tt.side}
		rook := board.Piece{Kind: board.Rook, Side: tt.side}
		s.Board.Place(sq(t, tt.kingFrom), king)
		s.Board.Place(sq(t, tt.rookFrom), rook)

		a := NewApplier(s, zaptest.NewLogger(t))
		err := a.Apply(MoveEvent{Category: CategoryCastle, HasMove: true, From: sq(t, tt.kingFrom), To: sq(t, tt.kingTo), Side: tt.side})
		if err != nil {
			t.Fatal(err)
		}

		if got := s.Board.Piece(sq(t, tt.kingTo)); got != king {
			t.Errorf("%s: wanted king on %s got %s", tt.kingTo, tt.kingTo, got)
		}
		if got := s.Board.Piece(sq(t, tt.rookTo)); got != rook {
			t.Errorf("%s: wanted rook on %s got %s", tt.kingTo, tt.rookTo, got)
		}
		for _, id := range []string{tt.kingFrom, tt.rookFrom} {
			if !s.Board.Piece(sq(t, id)).IsEmpty() {
				t.Errorf("%s: %s must be empty", tt.kingTo, id)
			}
		}
	}
}

func TestApplyPromotion(t *testing.T) {
	for _, side := range []board.Side{board.White, board.Black} {
		s := emptySession(t, board.White)
		from, to := sq(t, "b7"), sq(t, "a8")
		if side == board.Black {
			from, to = sq(t, "g2"), sq(t, "g1")
		}
		s.Board.Place(from, board.Piece{Kind: board.Pawn, Side: side})
		s.Board.Place(to, board.Piece{Kind: board.Rook, Side: side.Opponent()})

		a := NewApplier(s, zaptest.NewLogger(t))
		err := a.Apply(MoveEvent{HasMove: true, From: from, To: to, Promotion: board.Queen, Side: side})
		if err != nil {
			t.Fatal(err)
		}
		want := board.Piece{Kind: board.Queen, Side: side}
		if got := s.Board.Piece(to); got != want {
			t.Errorf("wanted %s got %s", want, got)
		}
		if !s.Board.Piece(from).IsEmpty() {
			t.Errorf("%s must be empty", from)
		}
	}
}

func TestApplyTerminal(t *testing.T) {
	s := newTestSession(t, board.White)
	a := NewApplier(s, zaptest.NewLogger(t))

	// The final move is drawn before the outcome is announced.
	var (
		ended      []Terminal
		boardAtEnd string
	)
	a.OnEnd = func(term Terminal) {
		ended = append(ended, term)
		boardAtEnd = s.Board.FEN()
	}
	err := a.Apply(MoveEvent{
		HasMove:  true,
		From:     sq(t, "d1"),
		To:       sq(t, "h5"),
		Side:     board.White,
		Terminal: &Terminal{Kind: Checkmate, Winner: board.White},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Over() {
		t.Fatal("session must be over")
	}
	if len(ended) != 1 || ended[0].Winner != board.White {
		t.Errorf("unexpected outcomes %+v", ended)
	}
	if boardAtEnd != "rnbqkbnr/pppppppp/8/7Q/8/8/PPPPPPPP/RNB1KBNR" {
		t.Errorf("final move not applied before announcement: %s", boardAtEnd)
	}

	before := s.Board.Snapshot()
	err = a.Apply(MoveEvent{HasMove: true, From: sq(t, "e7"), To: sq(t, "e5")})
	if !errors.Is(err, ErrSessionOver) {
		t.Errorf("wanted ErrSessionOver got %v", err)
	}
	if diff := cmp.Diff(before, s.Board.Snapshot()); diff != "" {
		t.Errorf("board changed after game over (-want +got):\n%s", diff)
	}
}

func TestApplyEmptySource(t *testing.T) {
	s := newTestSession(t, board.White)
	a := NewApplier(s, zaptest.NewLogger(t))
	err := a.Apply(MoveEvent{HasMove: true, From: sq(t, "e4"), To: sq(t, "e5")})
	if !errors.Is(err, board.ErrEmptySource) {
		t.Errorf("wanted ErrEmptySource got %v", err)
	}
}

func TestApplyResync(t *testing.T) {
	s := newTestSession(t, board.White)
	a := NewApplier(s, zaptest.NewLogger(t))
	a.Resync = true

	// The server saw a different first move than the one replayed.
	fen := "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR"
	err := a.Apply(MoveEvent{HasMove: true, From: sq(t, "e2"), To: sq(t, "e4"), FEN: fen})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Board.FEN(); got != fen {
		t.Errorf("wanted %s got %s", fen, got)
	}
}

func TestApplyFailureLeavesBoardUntouched(t *testing.T) {
	tests := []struct {
		name string
		ev   MoveEvent
	}{
		{"en passant", MoveEvent{Category: CategoryEnPassant, HasMove: true, From: sq(t, "e5"), To: sq(t, "d6"), Side: board.White}},
		{"castle", MoveEvent{Category: CategoryCastle, HasMove: true, From: sq(t, "e4"), To: sq(t, "g1"), Side: board.White}},
		{"same square", MoveEvent{Category: CategoryCastle, HasMove: true, From: sq(t, "e1"), To: sq(t, "e1"), Side: board.White}},
	}
	for _, tt := range tests {
		s := emptySession(t, board.White)
		s.Board.Place(sq(t, "d5"), board.Piece{Kind: board.Pawn, Side: board.Black})
		s.Board.Place(sq(t, "e1"), board.Piece{Kind: board.King, Side: board.White})
		s.Board.Place(sq(t, "h1"), board.Piece{Kind: board.Rook, Side: board.White})
		before := s.Board.Snapshot()

		a := NewApplier(s, zaptest.NewLogger(t))
		if err := a.Apply(tt.ev); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
		if diff := cmp.Diff(before, s.Board.Snapshot()); diff != "" {
			t.Errorf("%s: board changed by a failed apply (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestApplyUnderPromotion(t *testing.T) {
	s := emptySession(t, board.White)
	s.Board.Place(sq(t, "e7"), board.Piece{Kind: board.Pawn, Side: board.White})

	a := NewApplier(s, zaptest.NewLogger(t))
	err := a.Apply(MoveEvent{HasMove: true, From: sq(t, "e7"), To: sq(t, "e8"), Promotion: board.Knight, Side: board.White})
	if err != nil {
		t.Fatal(err)
	}
	want := board.Piece{Kind: board.Knight, Side: board.White}
	if got := s.Board.Piece(sq(t, "e8")); got != want {
		t.Errorf("wanted %s got %s", want, got)
	}
}

func TestApplyOutcomeOnlyKeepsEval(t *testing.T) {
	s := newTestSession(t, board.White)
	s.Eval.SetEvaluation(2.5)
	a := NewApplier(s, zaptest.NewLogger(t))
	if err := a.Apply(MoveEvent{Terminal: &Terminal{Kind: Stalemate}}); err != nil {
		t.Fatal(err)
	}
	if s.Eval.Score() != 2.5 {
		t.Errorf("wanted eval 2.5 got %v", s.Eval.Score())
	}
}
