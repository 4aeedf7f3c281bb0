package pkg

import (
	"context"
	"errors"
	"fmt"

	"github.com/qnkhuat/gokeshterm/pkg/board"
	"go.uber.org/zap"
)

// Game drives sessions against a server. Board mutation only happens inside
// functions handed to Dispatch; network calls run inside Spawn.
type Game struct {
	transport Transport
	log       *zap.Logger
	nickname  string
	resync    bool

	Session   *Session
	Collector *Collector
	Applier   *Applier

	// Dispatch runs fn on the goroutine that owns the board.
	Dispatch func(fn func())
	// Spawn runs a network round trip.
	Spawn func(fn func())

	OnStart   func(*Session)
	OnEnd     func(Terminal)
	OnReceipt func(string)
	// OnTurn reports whether the local player is expected to move.
	OnTurn func(mine bool)
}

func NewGame(t Transport, log *zap.Logger, nickname string, resync bool) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	inline := func(fn func()) { fn() }
	return &Game{
		transport: t,
		log:       log,
		nickname:  nickname,
		resync:    resync,
		Dispatch:  inline,
		Spawn:     inline,
	}
}

// Start opens a new session. The previous session, if any, is dropped.
func (g *Game) Start(ctx context.Context) error {
	s := NewSession(g.nickname)
	msg, err := g.transport.Play(ctx)
	if err != nil {
		g.log.Error("failed to start session", zap.Error(err))
		return err
	}
	side, err := board.ParseSide(msg.Color)
	if err != nil || side == board.None {
		err = fmt.Errorf("%w: no side assigned (%q)", ErrTransport, msg.Color)
		g.log.Error("failed to start session", zap.Error(err))
		return err
	}
	opening, err := msg.Event()
	if err != nil {
		g.log.Warn("ignoring malformed opening move", zap.Error(err))
		opening = MoveEvent{}
	}

	g.Dispatch(func() {
		g.install(s, side)
		if opening.HasMove {
			g.apply(s, opening)
		}
		g.turn(s, side == board.White || opening.HasMove)
	})
	g.log.Info("session started",
		zap.String("session", s.ID),
		zap.String("player", s.Player.Name),
		zap.Stringer("side", side))
	return nil
}

func (g *Game) install(s *Session, side board.Side) {
	if err := s.Assign(side); err != nil {
		g.log.Error("failed to orient board", zap.Error(err))
	}
	g.Session = s
	g.Collector = NewCollector(s)
	g.Applier = NewApplier(s, g.log)
	g.Applier.Resync = g.resync
	g.Applier.OnEnd = func(t Terminal) {
		if g.OnEnd != nil {
			g.OnEnd(t)
		}
	}
	if g.OnStart != nil {
		g.OnStart(s)
	}
}

// Activate feeds a square activation to the collector and submits the move
// when one is completed. It reports whether a submission was made.
func (g *Game) Activate(ctx context.Context, sq board.Square) bool {
	if g.Session == nil {
		return false
	}
	intent, ok := g.Collector.HandleSquareActivated(sq)
	if !ok {
		return false
	}
	s := g.Session
	g.Spawn(func() {
		if err := g.Submit(ctx, s, intent); err != nil && !errors.Is(err, ErrRejected) {
			g.log.Error("move failed", zap.Stringer("move", intent), zap.Error(err))
		}
	})
	return true
}

// Submit sends intent, applies the confirmed move and then the reply of the
// bot. Nothing is applied when the server rejects the move.
func (g *Game) Submit(ctx context.Context, s *Session, intent MoveIntent) error {
	res, err := g.transport.SubmitMove(ctx, intent.Message())
	if err != nil {
		return err
	}
	g.receipt(res.Receipt)
	if !res.Valid {
		g.log.Info("move rejected", zap.Stringer("move", intent), zap.String("receipt", res.Receipt))
		return fmt.Errorf("%w: %s", ErrRejected, res.Receipt)
	}
	ev, err := res.Event()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	g.Dispatch(func() {
		g.apply(s, ev)
		g.turn(s, false)
	})
	return g.FetchBotMove(ctx, s)
}

func (g *Game) FetchBotMove(ctx context.Context, s *Session) error {
	msg, err := g.transport.BotMove(ctx)
	if err != nil {
		return err
	}
	g.receipt(msg.Receipt)
	ev, err := msg.Event()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	g.Dispatch(func() {
		g.apply(s, ev)
		g.turn(s, true)
	})
	return nil
}

func (g *Game) apply(s *Session, ev MoveEvent) {
	if g.Session != s {
		g.log.Debug("dropping event for a closed session", zap.String("session", s.ID))
		return
	}
	err := g.Applier.Apply(ev)
	switch {
	case errors.Is(err, ErrSessionOver):
		g.log.Debug("event after game over", zap.Stringer("category", ev.Category))
	case err != nil:
		g.log.Error("failed to apply move", zap.Error(err))
	}
}

func (g *Game) turn(s *Session, mine bool) {
	if g.OnTurn != nil && g.Session == s {
		g.OnTurn(mine && !s.Over())
	}
}

func (g *Game) receipt(r string) {
	if r == "" {
		return
	}
	g.log.Debug("receipt", zap.String("receipt", r))
	if g.OnReceipt != nil {
		g.Dispatch(func() { g.OnReceipt(r) })
	}
}
