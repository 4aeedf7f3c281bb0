package board

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

const (
	NumRows    = 8
	NumCols    = 8
	NumSquares = NumRows * NumCols
)

// Files and Ranks are indexed by column and row. Row 0 is rank 8.
var (
	Files = [NumCols]string{"a", "b", "c", "d", "e", "f", "g", "h"}
	Ranks = [NumRows]string{"8", "7", "6", "5", "4", "3", "2", "1"}
)

// Square is a stable board coordinate. Its identity never changes with the
// orientation of the board, only its position on screen does.
type Square struct {
	Row int
	Col int
}

func ToSquareID(row, col int) string {
	return Files[col] + Ranks[row]
}

// SquareAt returns the square stored at index in a row-major array.
func SquareAt(index int) Square {
	return Square{Row: index / NumCols, Col: index % NumCols}
}

// ParseSquare decodes an algebraic identifier such as "e4".
func ParseSquare(id string) (Square, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if len(id) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", id)
	}
	col := int(id[0] - 'a')
	rank := int(id[1] - '0')
	if col < 0 || col >= NumCols || rank < 1 || rank > NumRows {
		return Square{}, fmt.Errorf("invalid square %q", id)
	}
	return Square{Row: NumRows - rank, Col: col}, nil
}

func (s Square) ID() string {
	return ToSquareID(s.Row, s.Col)
}

func (s Square) String() string {
	return s.ID()
}

func (s Square) Index() int {
	return s.Row*NumCols + s.Col
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < NumRows && s.Col >= 0 && s.Col < NumCols
}

// IsLight reports whether the square is drawn with the light color. a8 is light.
func (s Square) IsLight() bool {
	return (s.Row+s.Col)%2 == 0
}

// chessSquare converts to the notnil/chess numbering where A1 is square 0.
func (s Square) chessSquare() chess.Square {
	return chess.Square((NumRows-s.Row-1)*NumCols + s.Col)
}
