package pkg

import (
	"fmt"

	"github.com/qnkhuat/gokeshterm/pkg/board"
	"go.uber.org/zap"
)

// Applier replays server confirmed move events onto the session board.
type Applier struct {
	session *Session
	log     *zap.Logger
	// Resync rebuilds the board from the server FEN when they disagree.
	Resync bool
	// OnEnd is called once the event that ended the session is applied.
	OnEnd func(Terminal)
}

func NewApplier(s *Session, log *zap.Logger) *Applier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Applier{session: s, log: log}
}

// Apply mutates the board for ev. Secondary squares (the captured pawn, the
// castling rook) are handled before the mover is relocated so that the source
// square still holds the mover when it is read.
func (a *Applier) Apply(ev MoveEvent) error {
	if a.session.Over() {
		return ErrSessionOver
	}

	if ev.HasMove {
		if err := a.applyMove(ev); err != nil {
			return err
		}
		a.session.Eval.SetEvaluation(ev.Eval)
		a.checkFEN(ev.FEN)
	}

	if ev.Terminal != nil {
		a.session.End(*ev.Terminal)
		a.log.Info("game over",
			zap.String("outcome", ev.Terminal.Kind.String()),
			zap.Stringer("winner", ev.Terminal.Winner))
		if a.OnEnd != nil {
			a.OnEnd(*ev.Terminal)
		}
	}
	return nil
}

func (a *Applier) applyMove(ev MoveEvent) error {
	b := a.session.Board
	from, to := ev.From, ev.To

	// Secondary squares are only touched once the mover is known to exist.
	if err := b.CanMove(from, to); err != nil {
		return fmt.Errorf("apply %s %s-%s: %w", ev.Category, from, to, err)
	}

	switch ev.Category {
	case CategoryEnPassant:
		captured := board.Square{Row: from.Row, Col: to.Col}
		b.Clear(captured)
	case CategoryCastle:
		rookFrom, rookTo := castleRook(ev.Side, to)
		if err := b.Move(rookFrom, rookTo); err != nil {
			a.log.Warn("castle without rook", zap.Stringer("square", rookFrom), zap.Error(err))
		}
	}

	if err := b.Move(from, to); err != nil {
		return fmt.Errorf("apply %s %s-%s: %w", ev.Category, from, to, err)
	}

	if ev.Promotion != board.NoKind {
		mover := b.Piece(to)
		b.Place(to, board.Piece{Kind: ev.Promotion, Side: mover.Side})
	}

	a.log.Debug("applied move",
		zap.Stringer("category", ev.Category),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Float64("eval", ev.Eval))
	return nil
}

// castleRook returns the rook relocation for a king landing on to. The rank
// follows the moving side; the g file means the king side.
func castleRook(side board.Side, to board.Square) (board.Square, board.Square) {
	row := to.Row
	if side != board.None {
		row = side.BackRow()
	}
	if board.Files[to.Col] == "g" {
		return board.Square{Row: row, Col: 7}, board.Square{Row: row, Col: 5}
	}
	return board.Square{Row: row, Col: 0}, board.Square{Row: row, Col: 3}
}

func (a *Applier) checkFEN(fen string) {
	if fen == "" {
		return
	}
	diff, err := a.session.Board.Diff(fen)
	if err != nil {
		a.log.Warn("unreadable server fen", zap.String("fen", fen), zap.Error(err))
		return
	}
	if len(diff) == 0 {
		return
	}
	ids := make([]string, len(diff))
	for i, sq := range diff {
		ids[i] = sq.ID()
	}
	a.log.Warn("board out of sync with server",
		zap.Strings("squares", ids),
		zap.String("fen", fen),
		zap.String("local", a.session.Board.FEN()))
	if a.Resync {
		if err := a.session.Board.LoadFEN(fen); err != nil {
			a.log.Error("resync failed", zap.Error(err))
		}
	}
}
