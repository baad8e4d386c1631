// Package main is the entry point for the tasko CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tasko/internal/backend/googletasks"
	"tasko/internal/cache"
	"tasko/internal/cli"
	"tasko/internal/commands"
	"tasko/internal/config"
	"tasko/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Wire the controller: remote backend plus durable local cache.
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
		svc, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c, err := cache.Open(cfg.CachePath())
		if err != nil {
			// The cache is an optimization; run without it.
			logger.Warn("cache unavailable", "error", err)
			c = nil
		}
		return store.New(svc, c, logger), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
