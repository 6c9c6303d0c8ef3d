package app

import (
	"context"
	"os/signal"
	"syscall"

	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/logging"
	"github.com/agbru/phicalc/internal/server"
)

// runServe starts the HTTP API server and blocks until shutdown. The run
// timeout does not apply here; the server lives until a signal arrives.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.NewServer(a.Config.ServeAddr, a.Logger)
	if err := srv.Run(ctx); err != nil {
		a.Logger.Error("server failed", err, logging.String("addr", a.Config.ServeAddr))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
