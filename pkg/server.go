package pkg

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
	"go.uber.org/zap"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

// GatewayConfig describes how remote terminals reach the client binary.
type GatewayConfig struct {
	Addr        string
	HostKeyFile string
	IdleTimeout time.Duration
	// Binary is the chessterm client started for every session.
	Binary string
	// GameServer is passed to each client with --server.
	GameServer string
	// ClientLog is passed to each client with --log.
	ClientLog string
}

// Gateway serves one client process per SSH session. Every session gets its
// own pty and a generated nickname.
type Gateway struct {
	*ssh.Server
	cfg GatewayConfig
	log *zap.Logger
}

func NewGateway(cfg GatewayConfig, log *zap.Logger) (*Gateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = SshPort
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = ServerIdleTimeout
	}
	if cfg.Binary == "" {
		return nil, errors.New("gateway: client binary is required")
	}
	signer, err := HostSigner(cfg.HostKeyFile)
	if err != nil {
		return nil, err
	}

	g := &Gateway{cfg: cfg, log: log}
	g.Server = &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     g.handle,
	}
	g.AddHostKey(signer)
	return g, nil
}

// HostSigner loads the host key at path. When path is empty or missing, an
// ephemeral ed25519 key is generated instead.
func HostSigner(path string) (gossh.Signer, error) {
	if path != "" {
		pem, err := os.ReadFile(path)
		switch {
		case err == nil:
			signer, err := gossh.ParsePrivateKey(pem)
			if err != nil {
				return nil, fmt.Errorf("parse host key %s: %w", path, err)
			}
			return signer, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read host key: %w", err)
		}
	}
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	return gossh.NewSignerFromKey(key)
}

// ClientArgs are the arguments given to the client binary for a session.
func (g *Gateway) ClientArgs(nickname string) []string {
	args := []string{"--nick", nickname}
	if g.cfg.GameServer != "" {
		args = append(args, "--server", g.cfg.GameServer)
	}
	if g.cfg.ClientLog != "" {
		args = append(args, "--log", g.cfg.ClientLog)
	}
	return args
}

func (g *Gateway) handle(s ssh.Session) {
	ptyReq, winCh, isPty := s.Pty()
	if !isPty {
		io.WriteString(s, "non-interactive terminals are not supported\n")
		s.Exit(1)
		return
	}

	nickname := Nickname("")
	log := g.log.With(
		zap.String("user", s.User()),
		zap.String("nickname", nickname),
		zap.Stringer("remote", s.RemoteAddr()))
	log.Info("ssh session opened")
	defer log.Info("ssh session closed")

	ctx, cancel := context.WithCancel(s.Context())
	defer cancel()

	cmd := exec.CommandContext(ctx, g.cfg.Binary, g.ClientArgs(nickname)...)
	cmd.Env = append(s.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, winsize(ptyReq.Window))
	if err != nil {
		log.Error("failed to start client", zap.Error(err))
		io.WriteString(s, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		s.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, winsize(win)); err != nil {
				log.Debug("resize failed", zap.Error(err))
			}
		}
	}()

	go func() {
		io.Copy(f, s)
	}()
	io.Copy(s, f)

	if err := cmd.Wait(); err != nil {
		log.Warn("client exited", zap.Error(err))
		s.Exit(1)
		return
	}
	s.Exit(0)
}

func winsize(w ssh.Window) *pty.Winsize {
	return &pty.Winsize{Rows: uint16(w.Height), Cols: uint16(w.Width)}
}
