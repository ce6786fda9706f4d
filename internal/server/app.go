// Package server runs the gRPC bridge in front of a user collection store.
// It loads the collection once, handles graceful shutdown on SIGINT,
// SIGTERM and SIGQUIT, and serves until then.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	"github.com/dmitrijs2005/userdir/internal/logging"

	gs "github.com/dmitrijs2005/userdir/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *store.Store
}

func NewApp(c *config.Config, l logging.Logger, st *store.Store) *App {
	return &App{config: c, logger: l.With("module", "bridge"), store: st}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.BridgeAddr, app.logger, app.store, app.config.BridgeSecret)

	err := s.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}
	cancelFunc()
	return err
}

// Run loads the collection and serves the bridge until ctx is done or a
// termination signal arrives. A failed initial load is logged and the
// bridge starts anyway, so clients can retry with FetchAll.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting bridge...", "api", app.config.APIBaseURL)

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	app.store.FetchAll(ctx, false)
	if st := app.store.State(); st.HasError() {
		app.logger.Warn(ctx, "initial load failed", "error", st.Error)
	}

	return app.startGRPCServer(ctx, cancelFunc)
}
