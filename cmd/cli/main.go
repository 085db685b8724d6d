// cmd/cli/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/baechuer/skillmarket/internal/client/cli"
	"github.com/baechuer/skillmarket/internal/client/session"
	"github.com/baechuer/skillmarket/internal/logger"
)

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := cli.ParseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	backend, err := cli.NewBackend(cfg)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("backend setup failed")
		return 1
	}

	store := session.New(backend).WithLogger(logger.Logger)
	app := cli.NewApp(store, stdin, stdout, logger.Logger)
	defer app.Close()

	app.Run(ctx)
	_ = store.Logout(context.Background())
	return 0
}

func main() {
	// logs go to stderr so they never interleave with prompts
	logger.InitWithWriter(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
