package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"toolbar-cli/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// A .env next to the binary may set TOOLBAR_* defaults.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
