package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/gokeshterm/pkg"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	cmd := &cli.Command{
		Name:  "chessterm-server",
		Usage: "serve the chessterm client over SSH",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: pkg.SshPort, Usage: "SSH listen address"},
			&cli.StringFlag{Name: "host-key", Usage: "path to the host private key, generated when missing"},
			&cli.StringFlag{Name: "client", Value: "chessterm", Usage: "path to the chessterm client binary"},
			&cli.StringFlag{Name: "server", Value: pkg.DefaultServer, Sources: cli.EnvVars("CHESSTERM_SERVER"), Usage: "game server URL handed to every client"},
			&cli.StringFlag{Name: "client-log", Usage: "log file for the clients"},
			&cli.DurationFlag{Name: "idle", Value: pkg.ServerIdleTimeout, Usage: "idle timeout of a session"},
			&cli.StringFlag{Name: "log", Value: "./log", Usage: "path to log file"},
			&cli.StringFlag{Name: "level", Value: "info", Usage: "log level"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	log, closeLog, err := pkg.InitLog(c.String("log"), "server", c.String("level"))
	if err != nil {
		return err
	}
	defer closeLog()

	gw, err := pkg.NewGateway(pkg.GatewayConfig{
		Addr:        c.String("addr"),
		HostKeyFile: c.String("host-key"),
		IdleTimeout: c.Duration("idle"),
		Binary:      c.String("client"),
		GameServer:  c.String("server"),
		ClientLog:   c.String("client-log"),
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		gw.Close()
	}()

	log.Info("Server started", zap.String("addr", gw.Addr), zap.String("game", c.String("server")))
	if err := gw.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}
