package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qnkhuat/gokeshterm/pkg/board"
)

// Wire values of the "type" field.
const (
	TypeNormal    = "NORMAL"
	TypeEnPassant = "ENPASSANT"
	TypeCastle    = "CASTLE"
	TypeCheckmate = "CHECKMATE"
	TypeStalemate = "STALEMATE"
	TypeDraw      = "DRAW"
)

// Coord is a [row, col] pair on the wire. The server sends the string "none"
// when there is no square to report.
type Coord struct {
	Square board.Square
	Set    bool
}

func CoordOf(sq board.Square) Coord {
	return Coord{Square: sq, Set: true}
}

func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.Set {
		return []byte(`"none"`), nil
	}
	return json.Marshal([2]int{c.Square.Row, c.Square.Col})
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || (len(data) > 0 && data[0] == '"') {
		*c = Coord{}
		return nil
	}
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("coord: wanted 2 elements got %d", len(v))
	}
	sq := board.Square{Row: v[0], Col: v[1]}
	if !sq.Valid() {
		return fmt.Errorf("coord: %v out of range", v)
	}
	*c = Coord{Square: sq, Set: true}
	return nil
}

// MessageMove is the body of a move submission.
type MessageMove struct {
	From      Coord  `json:"from"`
	To        Coord  `json:"to"`
	Promotion string `json:"promotion"`
}

// MessageEvent is a move event as the server encodes it. Bot moves, user move
// confirmations and the session handshake all share these fields.
type MessageEvent struct {
	Type      string  `json:"type,omitempty"`
	Color     string  `json:"color,omitempty"`
	From      Coord   `json:"from"`
	To        Coord   `json:"to"`
	Promotion string  `json:"promotion,omitempty"`
	Eval      float64 `json:"eval"`
	Winner    string  `json:"winner,omitempty"`
	Receipt   string  `json:"receipt,omitempty"`
	Fen       string  `json:"fen,omitempty"`
	Checkmate bool    `json:"checkmate,omitempty"`
	Stalemate bool    `json:"stalemate,omitempty"`
	Draw      bool    `json:"draw,omitempty"`
	DrawType  string  `json:"draw-type,omitempty"`
	Msg       string  `json:"msg,omitempty"`
}

// MessageMoveResult answers a move submission.
type MessageMoveResult struct {
	Valid bool `json:"valid"`
	MessageEvent
}

// MessageConnect answers the session handshake. A black player may receive
// the opening move of the bot along with the color.
type MessageConnect struct {
	MessageEvent
}

func Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

type Category int

const (
	CategoryNormal Category = iota
	CategoryEnPassant
	CategoryCastle
)

func (c Category) String() string {
	switch c {
	case CategoryEnPassant:
		return TypeEnPassant
	case CategoryCastle:
		return TypeCastle
	default:
		return TypeNormal
	}
}

type TerminalKind int

const (
	Checkmate TerminalKind = iota
	Stalemate
	Draw
)

func (k TerminalKind) String() string {
	switch k {
	case Checkmate:
		return TypeCheckmate
	case Stalemate:
		return TypeStalemate
	default:
		return TypeDraw
	}
}

// Terminal is the outcome that ends a session. Winner is None for draws.
type Terminal struct {
	Kind   TerminalKind
	Winner board.Side
	Reason string
}

func (t Terminal) Announcement() string {
	switch t.Kind {
	case Checkmate:
		return fmt.Sprintf("Checkmate\n%s has won!", t.Winner.Title())
	case Stalemate:
		return "Stalemate. Game ends in a draw"
	}
	if t.Reason != "" {
		return fmt.Sprintf("Draw %s. Game ends in a draw", t.Reason)
	}
	return "Draw. Game ends in a draw"
}

// MoveEvent is a decoded, server confirmed move. HasMove is false for events
// that only carry an outcome.
type MoveEvent struct {
	Category  Category
	HasMove   bool
	From      board.Square
	To        board.Square
	Promotion board.Kind
	Side      board.Side
	Eval      float64
	Terminal  *Terminal
	Receipt   string
	FEN       string
}

// Event decodes the wire message.
func (m MessageEvent) Event() (MoveEvent, error) {
	ev := MoveEvent{
		Eval:    m.Eval,
		Receipt: m.Receipt,
		FEN:     m.Fen,
	}

	side, err := board.ParseSide(m.Color)
	if err != nil {
		return ev, err
	}
	ev.Side = side

	promotion, err := board.ParseKind(m.Promotion)
	if err != nil {
		return ev, err
	}
	ev.Promotion = promotion

	if m.From.Set && m.To.Set {
		ev.HasMove = true
		ev.From = m.From.Square
		ev.To = m.To.Square
	}

	switch strings.ToUpper(m.Type) {
	case TypeEnPassant:
		ev.Category = CategoryEnPassant
	case TypeCastle:
		ev.Category = CategoryCastle
	case TypeCheckmate:
		winner := m.Winner
		if winner == "" {
			winner = m.Color
		}
		w, err := board.ParseSide(winner)
		if err != nil {
			return ev, err
		}
		ev.Terminal = &Terminal{Kind: Checkmate, Winner: w}
	case TypeStalemate:
		ev.Terminal = &Terminal{Kind: Stalemate}
	case TypeDraw:
		ev.Terminal = &Terminal{Kind: Draw, Reason: m.Msg}
	}

	// A move may itself end the game.
	if ev.Terminal == nil && ev.HasMove {
		switch {
		case m.Checkmate:
			ev.Terminal = &Terminal{Kind: Checkmate, Winner: side}
		case m.Stalemate:
			ev.Terminal = &Terminal{Kind: Stalemate}
		case m.Draw:
			ev.Terminal = &Terminal{Kind: Draw, Reason: m.DrawType}
		}
	}
	return ev, nil
}
