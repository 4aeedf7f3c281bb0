package board

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = map[Kind]string{
	NoKind: "",
	Pawn:   "PAWN",
	Knight: "KNIGHT",
	Bishop: "BISHOP",
	Rook:   "ROOK",
	Queen:  "QUEEN",
	King:   "KING",
}

func (k Kind) String() string {
	return kindNames[k]
}

// ParseKind accepts the server spelling ("QUEEN") in any case. The empty
// string decodes to NoKind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return NoKind, fmt.Errorf("unknown piece kind %q", s)
}

type Side int

const (
	None Side = iota
	White
	Black
)

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

func (s Side) Title() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// ParseSide accepts "white", "WHITE", "black", "BLACK" and "none".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("unknown side %q", s)
}

func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return None
}

// BackRow is the row holding the side's king at the start of the game.
func (s Side) BackRow() int {
	if s == Black {
		return 0
	}
	return NumRows - 1
}

// PromotionRow is the far row a pawn of this side promotes on.
func (s Side) PromotionRow() int {
	if s == Black {
		return NumRows - 1
	}
	return 0
}

// Piece is the occupant of a square. The zero value is the empty marker.
type Piece struct {
	Kind Kind
	Side Side
}

var Empty = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "NULL"
	}
	return p.Side.String() + " " + p.Kind.String()
}

// Asset is the image path the web client used for the piece.
func (p Piece) Asset() string {
	if p.IsEmpty() {
		return ""
	}
	suffix := "w"
	if p.Side == Black {
		suffix = "b"
	}
	return fmt.Sprintf("static/pieces/%s-%s.svg", strings.ToLower(p.Kind.String()), suffix)
}

// Symbol is the unicode glyph of the piece, a space when empty.
func (p Piece) Symbol() string {
	if p.IsEmpty() {
		return " "
	}
	return p.chessPiece().String()
}

// Letter is the FEN letter of the piece.
func (p Piece) Letter() string {
	for l, cp := range fenPieces {
		if cp == p {
			return l
		}
	}
	return ""
}

var chessPieces = map[Piece]chess.Piece{
	{King, White}:   chess.WhiteKing,
	{Queen, White}:  chess.WhiteQueen,
	{Rook, White}:   chess.WhiteRook,
	{Bishop, White}: chess.WhiteBishop,
	{Knight, White}: chess.WhiteKnight,
	{Pawn, White}:   chess.WhitePawn,
	{King, Black}:   chess.BlackKing,
	{Queen, Black}:  chess.BlackQueen,
	{Rook, Black}:   chess.BlackRook,
	{Bishop, Black}: chess.BlackBishop,
	{Knight, Black}: chess.BlackKnight,
	{Pawn, Black}:   chess.BlackPawn,
}

var fenPieces = map[string]Piece{
	"K": {King, White}, "Q": {Queen, White}, "R": {Rook, White},
	"B": {Bishop, White}, "N": {Knight, White}, "P": {Pawn, White},
	"k": {King, Black}, "q": {Queen, Black}, "r": {Rook, Black},
	"b": {Bishop, Black}, "n": {Knight, Black}, "p": {Pawn, Black},
}

func (p Piece) chessPiece() chess.Piece {
	if cp, ok := chessPieces[p]; ok {
		return cp
	}
	return chess.NoPiece
}

func pieceFromChess(cp chess.Piece) Piece {
	for p, c := range chessPieces {
		if c == cp {
			return p
		}
	}
	return Empty
}
