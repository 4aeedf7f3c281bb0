package pkg

import "github.com/qnkhuat/gokeshterm/pkg/board"

type SelectionState int

const (
	AwaitingSource SelectionState = iota
	AwaitingDestination
)

func (s SelectionState) String() string {
	if s == AwaitingDestination {
		return "AwaitingDestination"
	}
	return "AwaitingSource"
}

// MoveIntent is an unvalidated move built from two activations.
type MoveIntent struct {
	From      board.Square
	To        board.Square
	Promotion board.Kind
}

func (m MoveIntent) Message() MessageMove {
	return MessageMove{
		From:      CoordOf(m.From),
		To:        CoordOf(m.To),
		Promotion: m.Promotion.String(),
	}
}

func (m MoveIntent) String() string {
	s := m.From.ID() + m.To.ID()
	if m.Promotion == board.Queen {
		s += "q"
	}
	return s
}

// Collector turns square activations into move intents. It never touches the
// board, so a rejected intent needs no rollback.
type Collector struct {
	session *Session
	state   SelectionState
	pending board.Square
}

func NewCollector(s *Session) *Collector {
	return &Collector{session: s}
}

func (c *Collector) State() SelectionState {
	return c.state
}

// Pending returns the selected source square, if any.
func (c *Collector) Pending() (board.Square, bool) {
	return c.pending, c.state == AwaitingDestination
}

func (c *Collector) Reset() {
	c.state = AwaitingSource
	c.pending = board.Square{}
}

// HandleSquareActivated feeds one activation to the state machine and returns
// the completed intent when the activation was a destination.
func (c *Collector) HandleSquareActivated(sq board.Square) (MoveIntent, bool) {
	if c.session.Over() || c.session.Side() == board.None {
		c.Reset()
		return MoveIntent{}, false
	}

	occupant := c.session.Board.Piece(sq)
	if occupant.Side == c.session.Side() {
		c.pending = sq
		c.state = AwaitingDestination
		return MoveIntent{}, false
	}
	// Enemy pieces and empty squares alike complete a pending move.
	if c.state != AwaitingDestination {
		return MoveIntent{}, false
	}

	intent := MoveIntent{From: c.pending, To: sq}
	mover := c.session.Board.Piece(c.pending)
	if mover.Kind == board.Pawn && sq.Row == mover.Side.PromotionRow() {
		intent.Promotion = board.Queen
	}
	c.Reset()
	return intent, true
}
