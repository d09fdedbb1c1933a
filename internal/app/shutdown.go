package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"intern-watch/internal/observability"
)

// GracefulShutdown returns a context cancelled on SIGINT/SIGTERM.
func GracefulShutdown(logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()

	return ctx, cancel
}
