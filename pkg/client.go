package pkg

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/gokeshterm/pkg/board"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageBoard   = "board"
	pageOutcome = "outcome"
	// Column 0 holds the rank labels and the last row the file labels.
	labelRow = board.NumRows
	labelCol = 0
)

// Client is the terminal UI. All board mutation happens inside
// App.QueueUpdateDraw, so the board is only touched by the UI goroutine.
type Client struct {
	App      *tview.Application
	Pages    *tview.Pages
	Board    *tview.Table
	Status   *tview.TextView
	Messages *tview.TextView
	Meter    *Meter
	Clock    *Clock
	Game     *Game

	ctx   context.Context
	theme Theme
	log   *zap.Logger
}

func NewClient(ctx context.Context, game *Game, theme Theme, log *zap.Logger) *Client {
	app := tview.NewApplication()

	boardTable := tview.NewTable()
	status := tview.NewTextView().SetDynamicColors(true)
	messages := tview.NewTextView().SetScrollable(true).SetDynamicColors(true)
	meter := NewMeter(theme)

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(status, 3, 0, false).
		AddItem(messages, 0, 1, false)

	layout := tview.NewFlex().
		AddItem(meter, 3, 0, false).
		AddItem(boardTable, 30, 0, true).
		AddItem(side, 0, 1, false)

	pages := tview.NewPages().AddPage(pageBoard, layout, true, true)

	cl := &Client{
		App:      app,
		Pages:    pages,
		Board:    boardTable,
		Status:   status,
		Messages: messages,
		Meter:    meter,
		Clock:    NewClock(),
		Game:     game,
		ctx:      ctx,
		theme:    theme,
		log:      log,
	}

	game.Dispatch = func(fn func()) { app.QueueUpdateDraw(fn) }
	game.Spawn = func(fn func()) { go fn() }
	game.OnStart = cl.attach
	game.OnEnd = cl.announce
	game.OnReceipt = cl.receipt
	game.OnTurn = cl.turn
	cl.Clock.OnTick = func() { app.QueueUpdateDraw(cl.renderStatus) }

	cl.initTable()
	app.SetRoot(pages, true)
	return cl
}

func (cl *Client) initTable() {
	cl.Board.SetSelectable(true, true)
	cl.Board.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			cl.App.Stop()
		}
	}).SetSelectedFunc(func(row, col int) {
		if row == labelRow || col == labelCol || cl.Game.Session == nil {
			return
		}
		sq := cl.Game.Session.Layout.SquareAtCell(row, col-1)
		if cl.Game.Activate(cl.ctx, sq) {
			cl.log.Debug("move submitted", zap.Stringer("to", sq))
		}
		cl.RenderTable()
	})
}

// Run starts a session and blocks until the UI exits.
func (cl *Client) Run() error {
	go cl.Clock.Run(cl.ctx, clockInterval)
	cl.NewGame()
	return cl.App.Run()
}

// NewGame drops the current session and asks the server for a new one.
func (cl *Client) NewGame() {
	cl.setStatus("Connecting to the server...")
	go func() {
		if err := cl.Game.Start(cl.ctx); err != nil {
			cl.App.QueueUpdateDraw(func() {
				cl.setStatus(fmt.Sprintf("[red]Could not start a game[white]\n%s", err))
			})
		}
	}()
}

func (cl *Client) attach(s *Session) {
	s.Board.Subscribe(board.ObserverFunc(cl.squareChanged))
	cl.Meter.Attach(s.Eval, s.Layout.Flipped())
	cl.Clock.Reset()
	cl.Messages.Clear()
	cl.message(fmt.Sprintf("New game as %s", s.Player))
	cl.RenderTable()
}

func (cl *Client) announce(t Terminal) {
	cl.Clock.Pause()
	modal := tview.NewModal().
		SetText(t.Announcement()).
		AddButtons([]string{string(ActionNewGame), string(ActionExit)}).
		SetDoneFunc(func(_ int, label string) {
			cl.Pages.RemovePage(pageOutcome)
			if Action(label) == ActionNewGame {
				cl.NewGame()
				return
			}
			cl.App.Stop()
		})
	cl.Pages.AddPage(pageOutcome, modal, false, true)
}

func (cl *Client) receipt(r string) {
	cl.message(r)
}

// message appends a line to the message view in the theme's message color.
func (cl *Client) message(text string) {
	fmt.Fprintf(cl.Messages, "%s%s[-]\n", colorTag(cl.theme.Msg), tview.Escape(text))
}

func colorTag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "[-]"
	}
	return "[" + fmtHex(c.Hex()) + "]"
}

func (cl *Client) turn(mine bool) {
	if mine {
		cl.Clock.Resume()
	} else {
		cl.Clock.Pause()
	}
	cl.renderStatus()
}

func (cl *Client) setStatus(text string) {
	cl.Status.SetText(text)
}

func (cl *Client) renderStatus() {
	s := cl.Game.Session
	if s == nil {
		return
	}
	switch {
	case s.Over():
		cl.setStatus(fmt.Sprintf("%s\nGame over", s.Player))
	default:
		cl.setStatus(fmt.Sprintf("%s\nThinking time %s", s.Player, cl.Clock))
	}
}

// squareChanged redraws the single cell of sq.
func (cl *Client) squareChanged(sq board.Square, p board.Piece) {
	s := cl.Game.Session
	if s == nil {
		return
	}
	row, col := s.Layout.Cell(sq)
	cl.Board.SetCell(row, col+1, cl.squareCell(sq, p))
}

// RenderTable draws every square and label for the current orientation.
func (cl *Client) RenderTable() {
	s := cl.Game.Session
	if s == nil {
		return
	}
	for r := 0; r < board.NumRows; r++ {
		cl.Board.SetCell(r, labelCol, tview.NewTableCell(s.Layout.RankLabel(r)).
			SetAlign(tview.AlignCenter).
			SetTextColor(cl.theme.Rank).
			SetSelectable(false))
		for c := 0; c < board.NumCols; c++ {
			sq := s.Layout.SquareAtCell(r, c)
			cl.Board.SetCell(r, c+1, cl.squareCell(sq, s.Board.Piece(sq)))
		}
	}
	for c := 0; c < board.NumCols; c++ {
		cl.Board.SetCell(labelRow, c+1, tview.NewTableCell(" "+s.Layout.FileLabel(c)).
			SetAlign(tview.AlignCenter).
			SetTextColor(cl.theme.File).
			SetSelectable(false))
	}
	cl.Board.SetCell(labelRow, labelCol, tview.NewTableCell("").SetSelectable(false))
	cl.renderStatus()
}

func (cl *Client) squareCell(sq board.Square, p board.Piece) *tview.TableCell {
	return tview.NewTableCell(" " + p.Symbol() + " ").
		SetAlign(tview.AlignCenter).
		SetTextColor(cl.pieceColor(p)).
		SetBackgroundColor(cl.squareColor(sq))
}

func (cl *Client) pieceColor(p board.Piece) tcell.Color {
	if p.Side == board.Black {
		return cl.theme.Black
	}
	return cl.theme.White
}

func (cl *Client) squareColor(sq board.Square) tcell.Color {
	if c := cl.Game.Collector; c != nil {
		if pending, ok := c.Pending(); ok && pending == sq {
			return cl.theme.SquareSelected
		}
	}
	if sq.IsLight() {
		return cl.theme.SquareLight
	}
	return cl.theme.SquareDark
}
