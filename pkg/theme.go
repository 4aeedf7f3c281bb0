package pkg

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name           string
	SquareDark     tcell.Color
	SquareLight    tcell.Color
	SquareSelected tcell.Color
	White          tcell.Color
	Black          tcell.Color
	Rank           tcell.Color
	File           tcell.Color
	Msg            tcell.Color
	MeterWhite     tcell.Color
	MeterBlack     tcell.Color
	MeterMid       tcell.Color
}

// ThemeHex is the config file form of a Theme
type ThemeHex struct {
	Name           string `yaml:"name"`
	SquareDark     string `yaml:"squareDark"`
	SquareLight    string `yaml:"squareLight"`
	SquareSelected string `yaml:"squareSelected"`
	White          string `yaml:"white"`
	Black          string `yaml:"black"`
	Rank           string `yaml:"rank"`
	File           string `yaml:"file"`
	Msg            string `yaml:"msg"`
	MeterWhite     string `yaml:"meterWhite"`
	MeterBlack     string `yaml:"meterBlack"`
	MeterMid       string `yaml:"meterMid"`
}

// fmtHex returns "#0" for ColorDefault so that it survives a round trip
// through the config rather than being read back as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:           t.Name,
		SquareDark:     fmtHex(t.SquareDark.Hex()),
		SquareLight:    fmtHex(t.SquareLight.Hex()),
		SquareSelected: fmtHex(t.SquareSelected.Hex()),
		White:          fmtHex(t.White.Hex()),
		Black:          fmtHex(t.Black.Hex()),
		Rank:           fmtHex(t.Rank.Hex()),
		File:           fmtHex(t.File.Hex()),
		Msg:            fmtHex(t.Msg.Hex()),
		MeterWhite:     fmtHex(t.MeterWhite.Hex()),
		MeterBlack:     fmtHex(t.MeterBlack.Hex()),
		MeterMid:       fmtHex(t.MeterMid.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:           t.Name,
		SquareDark:     tcell.GetColor(t.SquareDark),
		SquareLight:    tcell.GetColor(t.SquareLight),
		SquareSelected: tcell.GetColor(t.SquareSelected),
		White:          tcell.GetColor(t.White),
		Black:          tcell.GetColor(t.Black),
		Rank:           tcell.GetColor(t.Rank),
		File:           tcell.GetColor(t.File),
		Msg:            tcell.GetColor(t.Msg),
		MeterWhite:     tcell.GetColor(t.MeterWhite),
		MeterBlack:     tcell.GetColor(t.MeterBlack),
		MeterMid:       tcell.GetColor(t.MeterMid),
	}
}

// ImportThemes returns the theme named want, looking at the configured
// themes first and the built in ones after
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	for _, t := range BuiltinThemes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, errors.New("theme: no theme found")
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	Name:           "basic",
	SquareDark:     tcell.ColorGreen,
	SquareLight:    tcell.ColorBlue,
	SquareSelected: tcell.ColorRed,
	White:          tcell.ColorWhite,
	Black:          tcell.ColorBlack,
	Rank:           tcell.Color247,
	File:           tcell.Color247,
	Msg:            tcell.Color160,
	MeterWhite:     tcell.Color255,
	MeterBlack:     tcell.Color236,
	MeterMid:       tcell.Color45,
}

var ThemeWood = Theme{
	Name:           "wood",
	SquareDark:     tcell.Color130,
	SquareLight:    tcell.Color180,
	SquareSelected: tcell.Color226,
	White:          tcell.Color231,
	Black:          tcell.Color232,
	Rank:           tcell.Color247,
	File:           tcell.Color247,
	Msg:            tcell.Color160,
	MeterWhite:     tcell.Color231,
	MeterBlack:     tcell.Color94,
	MeterMid:       tcell.Color222,
}

var BuiltinThemes = []Theme{ThemeBasic, ThemeWood}
