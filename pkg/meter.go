package pkg

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/tview"
)

const meterBlock = '█'

// Meter draws an EvalIndicator as a vertical bar. White fills from the side
// of the board the white pieces are drawn on.
type Meter struct {
	*tview.Box
	eval    *EvalIndicator
	theme   Theme
	flipped bool
	score   float64
}

func NewMeter(theme Theme) *Meter {
	m := &Meter{Box: tview.NewBox(), theme: theme}
	m.Box.SetDrawFunc(m.draw)
	return m
}

// Attach points the meter at the indicator of a new session. Updates from
// indicators attached earlier are ignored.
func (m *Meter) Attach(e *EvalIndicator, flipped bool) {
	m.eval = e
	m.flipped = flipped
	m.score = e.Score()
	e.Subscribe(func(score float64) {
		if m.eval == e {
			m.score = score
		}
	})
}

func (m *Meter) Score() float64 {
	return m.score
}

func (m *Meter) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if m.eval == nil || height < 2 {
		return x, y, width, height
	}
	score := m.score
	cells := height - 1
	white := FilledCells(score, cells)
	fill := tcell.StyleDefault.Foreground(meterColor(m.theme, score))
	base := tcell.StyleDefault.Foreground(m.theme.MeterBlack)

	for i := 0; i < cells; i++ {
		// i counts from the white end of the bar.
		row := y + cells - 1 - i
		if m.flipped {
			row = y + i
		}
		style := base
		if i < white {
			style = fill
		}
		screen.SetContent(x, row, meterBlock, nil, style)
		screen.SetContent(x+1, row, meterBlock, nil, style)
	}
	label := fmt.Sprintf("%+.1f", score)
	labelStyle := tcell.StyleDefault.Foreground(m.theme.MeterMid)
	for i, r := range label {
		screen.SetContent(x+i, y+cells, r, nil, labelStyle)
	}
	return x, y, width, height
}

// meterColor blends from the black to the white meter color as white's
// share of the bar grows.
func meterColor(t Theme, score float64) tcell.Color {
	from, ok1 := toColorful(t.MeterBlack)
	to, ok2 := toColorful(t.MeterWhite)
	if !ok1 || !ok2 {
		return t.MeterWhite
	}
	share := (100 - BlackShare(score)) / 100
	r, g, b := from.BlendLab(to, share).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	if !c.Valid() {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}
