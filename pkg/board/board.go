package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrEmptySource = errors.New("board: no piece on source square")
	ErrSameSquare  = errors.New("board: source and destination are the same square")
)

// Observer is notified after every mutation of a square.
type Observer interface {
	SquareChanged(sq Square, p Piece)
}

type ObserverFunc func(sq Square, p Piece)

func (f ObserverFunc) SquareChanged(sq Square, p Piece) {
	f(sq, p)
}

// Board is the model of the 64 squares, indexed by row*8+col. Every square
// always holds a Piece value; Empty marks an unoccupied square.
type Board struct {
	squares   [NumSquares]Piece
	observers []Observer
}

func New() *Board {
	return &Board{}
}

func (b *Board) Subscribe(o Observer) {
	b.observers = append(b.observers, o)
}

// Initialize seeds the standard starting position.
func (b *Board) Initialize() {
	b.load(chess.NewGame().Position().Board())
}

func (b *Board) Piece(sq Square) Piece {
	return b.squares[sq.Index()]
}

func (b *Board) Place(sq Square, p Piece) {
	b.squares[sq.Index()] = p
	b.notify(sq)
}

func (b *Board) Clear(sq Square) {
	b.Place(sq, Empty)
}

// Move detaches the occupant of from, discards whatever stood on to and
// leaves from empty.
func (b *Board) Move(from, to Square) error {
	if err := b.CanMove(from, to); err != nil {
		return err
	}
	b.Place(to, b.Piece(from))
	b.Clear(from)
	return nil
}

// CanMove reports the error Move would return, without mutating anything.
func (b *Board) CanMove(from, to Square) error {
	if from == to {
		return ErrSameSquare
	}
	if b.Piece(from).IsEmpty() {
		return fmt.Errorf("%w: %s", ErrEmptySource, from)
	}
	return nil
}

func (b *Board) Snapshot() [NumSquares]Piece {
	return b.squares
}

// FEN returns the piece placement field of the board.
func (b *Board) FEN() string {
	var sb strings.Builder
	for row := 0; row < NumRows; row++ {
		empty := 0
		for col := 0; col < NumCols; col++ {
			p := b.squares[row*NumCols+col]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < NumRows-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Diff returns the squares whose occupant differs from the placement in fen.
// fen may be a full FEN or only its placement field.
func (b *Board) Diff(fen string) ([]Square, error) {
	cb, err := parseFEN(fen)
	if err != nil {
		return nil, err
	}
	var diff []Square
	for i := 0; i < NumSquares; i++ {
		sq := SquareAt(i)
		if pieceFromChess(cb.Piece(sq.chessSquare())) != b.squares[i] {
			diff = append(diff, sq)
		}
	}
	return diff, nil
}

// LoadFEN replaces the whole placement with the one described by fen.
func (b *Board) LoadFEN(fen string) error {
	cb, err := parseFEN(fen)
	if err != nil {
		return err
	}
	b.load(cb)
	return nil
}

func (b *Board) load(cb *chess.Board) {
	for i := 0; i < NumSquares; i++ {
		sq := SquareAt(i)
		b.Place(sq, pieceFromChess(cb.Piece(sq.chessSquare())))
	}
}

func (b *Board) notify(sq Square) {
	p := b.squares[sq.Index()]
	for _, o := range b.observers {
		o.SquareChanged(sq, p)
	}
}

func parseFEN(fen string) (*chess.Board, error) {
	fen = strings.TrimSpace(fen)
	if len(strings.Fields(fen)) == 1 {
		fen += " w - - 0 1"
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("board: parse fen: %w", err)
	}
	return chess.NewGame(opt).Position().Board(), nil
}
