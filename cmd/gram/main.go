package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/cli"
	logger "github.com/sirupsen/logrus"
	urfavecli "github.com/urfave/cli/v3"
)

func main() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logger.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logger.WarnLevel)

	if err := runCLI(os.Args); err != nil {
		os.Exit(exitCode(err))
	}
}

// runCLI runs the root command under a context cancelled by SIGINT/SIGTERM.
// Errors that carry a message are printed to stderr before returning.
func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.New(app.StdStreams()).Run(ctx, args)
	if err == nil {
		return nil
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	}
	if errors.Is(err, context.Canceled) {
		return urfavecli.Exit("", 130)
	}
	return err
}

func exitCode(err error) int {
	var coder urfavecli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
