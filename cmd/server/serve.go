package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// httpServer is the part of web.Server that serve drives.
type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until ctx is cancelled or the listener fails. It then
// shuts srv down, waiting for in-flight requests, and runs cleanup with the
// same deadline. serve returns only after cleanup has finished, so callers
// may release shared resources such as the database pool afterwards.
func serve(ctx context.Context, srv httpServer, timeout time.Duration, cleanup func(context.Context)) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	var startErr error
	select {
	case startErr = <-errCh:
	case <-ctx.Done():
		slog.Info("shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if startErr == nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		startErr = <-errCh
	}

	cleanup(shutdownCtx)

	if errors.Is(startErr, http.ErrServerClosed) {
		return nil
	}
	return startErr
}
