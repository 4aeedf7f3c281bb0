package pkg

import (
	"errors"

	"github.com/google/uuid"
	"github.com/qnkhuat/gokeshterm/pkg/board"
)

var ErrSessionOver = errors.New("session is over")

// Session is the state of one game, created when the server assigns a side
// and dropped when the game ends or a new one starts.
type Session struct {
	ID      string
	Player  Player
	Board   *board.Board
	Layout  *board.Layout
	Eval    *EvalIndicator
	outcome *Terminal
}

// NewSession prepares a board in the starting position. The side is not
// known yet; Assign fixes it.
func NewSession(nickname string) *Session {
	b := board.New()
	b.Initialize()
	return &Session{
		ID:     uuid.NewString(),
		Player: Player{Name: nickname},
		Board:  b,
		Layout: board.NewLayout(),
		Eval:   NewEvalIndicator(),
	}
}

// Assign fixes the local side and orients the board for it.
func (s *Session) Assign(side board.Side) error {
	if err := s.Layout.ApplyOrientation(side); err != nil {
		return err
	}
	s.Player.Side = side
	return nil
}

func (s *Session) Side() board.Side {
	return s.Player.Side
}

func (s *Session) End(t Terminal) {
	if s.outcome == nil {
		s.outcome = &t
	}
}

func (s *Session) Over() bool {
	return s.outcome != nil
}

func (s *Session) Outcome() *Terminal {
	return s.outcome
}
