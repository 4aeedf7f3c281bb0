package board

import "errors"

var ErrOrientationFixed = errors.New("board: orientation already applied")

// Layout is the on-screen order of the squares. Flipping changes where a
// square is drawn, never its identity or occupant.
type Layout struct {
	order   [NumSquares]Square
	flipped bool
	applied bool
}

func NewLayout() *Layout {
	l := &Layout{}
	for i := range l.order {
		l.order[i] = SquareAt(i)
	}
	return l
}

// ApplyOrientation reverses the display order when side moves second. It
// may be called once per session.
func (l *Layout) ApplyOrientation(side Side) error {
	if l.applied {
		return ErrOrientationFixed
	}
	l.applied = true
	if side != Black {
		return nil
	}
	for i, j := 0, NumSquares-1; i < j; i, j = i+1, j-1 {
		l.order[i], l.order[j] = l.order[j], l.order[i]
	}
	l.flipped = true
	return nil
}

func (l *Layout) Flipped() bool {
	return l.flipped
}

// At returns the square drawn at display position pos.
func (l *Layout) At(pos int) Square {
	return l.order[pos]
}

// Position is the inverse of At.
func (l *Layout) Position(sq Square) int {
	if l.flipped {
		return NumSquares - 1 - sq.Index()
	}
	return sq.Index()
}

// Cell returns the display row and column of sq.
func (l *Layout) Cell(sq Square) (int, int) {
	pos := l.Position(sq)
	return pos / NumCols, pos % NumCols
}

func (l *Layout) SquareAtCell(row, col int) Square {
	return l.At(row*NumCols + col)
}

// RankLabel and FileLabel are the coordinate labels of a display row or column.
func (l *Layout) RankLabel(row int) string {
	return Ranks[l.SquareAtCell(row, 0).Row]
}

func (l *Layout) FileLabel(col int) string {
	return Files[l.SquareAtCell(0, col).Col]
}
