package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"study-assistant/internal/app"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	load := func(ctx context.Context) (app.Deps, error) {
		return app.Build(ctx, os.Stderr)
	}
	if err := fang.Execute(ctx, NewRootCmd(version, load)); err != nil {
		os.Exit(1)
	}
}
