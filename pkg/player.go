package pkg

import (
	"fmt"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/qnkhuat/gokeshterm/pkg/board"
)

type Player struct {
	Name string
	Side board.Side
}

func (p Player) String() string {
	if p.Side == board.None {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Side.Title())
}

// Nickname returns name, or a generated two word name when it is blank.
func Nickname(name string) string {
	if name != "" {
		return name
	}
	return petname.Generate(2, "-")
}
