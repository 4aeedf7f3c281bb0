package pkg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/qnkhuat/gokeshterm/pkg/board"
	"go.uber.org/zap"
)

// Console plays through a line based terminal. Each word typed is a square
// activation ("e2", "e4") or one of the console commands.
type Console struct {
	Game *Game
	in   io.Reader
	out  io.Writer
	log  *zap.Logger

	light    *color.Color
	dark     *color.Color
	selected *color.Color
	label    *color.Color
	notice   *color.Color

	restart bool
}

func NewConsole(game *Game, in io.Reader, out io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Console{
		Game:     game,
		in:       in,
		out:      out,
		log:      log,
		light:    color.New(color.BgHiWhite, color.FgBlack),
		dark:     color.New(color.BgGreen, color.FgBlack),
		selected: color.New(color.BgRed, color.FgBlack),
		label:    color.New(color.FgHiBlack),
		notice:   color.New(color.FgYellow, color.Bold),
	}
	game.OnStart = func(s *Session) {
		fmt.Fprintf(c.out, "New game as %s\n", s.Player)
		c.Draw()
	}
	game.OnReceipt = func(r string) {
		fmt.Fprintf(c.out, "server: %s\n", r)
	}
	game.OnEnd = func(t Terminal) {
		c.Draw()
		c.notice.Fprintln(c.out, t.Announcement())
		c.restart = true
	}
	return c
}

// Run reads activations until the input ends or "quit" is typed.
func (c *Console) Run(ctx context.Context) error {
	if err := c.Game.Start(ctx); err != nil {
		return err
	}
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		for _, word := range strings.Fields(scanner.Text()) {
			if quit := c.handle(ctx, strings.ToLower(word)); quit {
				return nil
			}
			if c.restart {
				c.restart = false
				if err := c.Game.Start(ctx); err != nil {
					return err
				}
			}
		}
	}
	return scanner.Err()
}

func (c *Console) handle(ctx context.Context, word string) bool {
	switch word {
	case CommandQuit:
		return true
	case CommandNew:
		c.restart = true
		return false
	case CommandShow:
		c.Draw()
		return false
	}

	sq, err := board.ParseSquare(word)
	if err != nil {
		fmt.Fprintf(c.out, "unknown square %q\n", word)
		return false
	}
	if c.Game.Activate(ctx, sq) {
		if !c.Game.Session.Over() {
			c.Draw()
		}
		return false
	}
	if pending, ok := c.Game.Collector.Pending(); ok {
		fmt.Fprintf(c.out, "selected %s\n", pending)
	}
	return false
}

// Draw prints the board in the orientation of the session.
func (c *Console) Draw() {
	s := c.Game.Session
	if s == nil {
		return
	}
	pending, hasPending := c.Game.Collector.Pending()
	var sb strings.Builder
	for r := 0; r < board.NumRows; r++ {
		sb.WriteString(c.label.Sprint(s.Layout.RankLabel(r)) + " ")
		for col := 0; col < board.NumCols; col++ {
			sq := s.Layout.SquareAtCell(r, col)
			cell := " " + s.Board.Piece(sq).Symbol() + " "
			switch {
			case hasPending && pending == sq:
				sb.WriteString(c.selected.Sprint(cell))
			case sq.IsLight():
				sb.WriteString(c.light.Sprint(cell))
			default:
				sb.WriteString(c.dark.Sprint(cell))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for col := 0; col < board.NumCols; col++ {
		sb.WriteString(c.label.Sprint(" " + s.Layout.FileLabel(col) + " "))
	}
	sb.WriteByte('\n')
	fmt.Fprintf(c.out, "%seval %+.1f\n", sb.String(), s.Eval.Score())
}
