package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/qnkhuat/gokeshterm/pkg"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	cmd := &cli.Command{
		Name:  "chessterm",
		Usage: "play chess against a bot server from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: pkg.DefaultConfigPath(), Usage: "path to config file"},
			&cli.StringFlag{Name: "server", Aliases: []string{"s"}, Usage: "game server URL"},
			&cli.DurationFlag{Name: "timeout", Usage: "request timeout"},
			&cli.StringFlag{Name: "log", Usage: "path to log file"},
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "log level (debug, info, warn, error)"},
			&cli.StringFlag{Name: "theme", Aliases: []string{"t"}, Usage: "board theme"},
			&cli.StringFlag{Name: "nick", Aliases: []string{"n"}, Usage: "nickname, generated when empty"},
			&cli.BoolFlag{Name: "plain", Usage: "line based console instead of the full screen UI"},
			&cli.BoolFlag{Name: "resync", Usage: "rebuild the board from the server FEN on mismatch"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Command) (pkg.Config, error) {
	cfg, err := pkg.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("server") {
		cfg.Server = c.String("server")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("log") {
		cfg.LogPath = c.String("log")
	}
	if c.IsSet("level") {
		cfg.LogLevel = c.String("level")
	}
	if c.IsSet("theme") {
		cfg.Theme = c.String("theme")
	}
	if c.IsSet("nick") {
		cfg.Nickname = c.String("nick")
	}
	if c.IsSet("resync") {
		cfg.Resync = c.Bool("resync")
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, closeLog, err := pkg.InitLog(cfg.LogPath, "client", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nickname := pkg.Nickname(cfg.Nickname)
	clientID := uuid.NewString()
	transport := pkg.NewHTTPTransport(cfg.Server,
		pkg.WithTimeout(cfg.Timeout),
		pkg.WithHeader("X-Session-ID", clientID),
		pkg.WithHeader("X-Player", nickname))
	game := pkg.NewGame(transport, log, nickname, cfg.Resync)

	log.Info("New client",
		zap.String("server", cfg.Server),
		zap.String("client", clientID),
		zap.String("player", nickname))

	if c.Bool("plain") || !term.IsTerminal(int(os.Stdout.Fd())) {
		return pkg.NewConsole(game, os.Stdin, os.Stdout, log).Run(ctx)
	}

	theme, err := cfg.ResolveTheme()
	if err != nil {
		return err
	}
	cl := pkg.NewClient(ctx, game, theme, log)
	go func() {
		<-ctx.Done()
		cl.App.Stop()
	}()
	cl.App.EnableMouse(true)
	return cl.Run()
}
