// Package server initializes and runs the provisioning and auth service.
// It connects the Cassandra-backed store, wires repositories and services
// into the HTTP surface, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/crewbase/crewbase/internal/logging"
	"github.com/crewbase/crewbase/internal/server/config"
	"github.com/crewbase/crewbase/internal/server/httpapi"
	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/server/repositories/accounts"
	"github.com/crewbase/crewbase/internal/server/repositories/credentials"
	"github.com/crewbase/crewbase/internal/server/repositories/memberships"
	"github.com/crewbase/crewbase/internal/server/repositories/preferences"
	"github.com/crewbase/crewbase/internal/server/repositories/sessions"
	"github.com/crewbase/crewbase/internal/server/repositories/teams"
	"github.com/crewbase/crewbase/internal/server/services"
	"github.com/crewbase/crewbase/internal/storex"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      storex.DB
	handler *httpapi.Handler
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	db, err := storex.NewCassandraDB(cfg.CassandraHosts, cfg.CassandraKeyspace, models.Schema)
	if err != nil {
		return nil, fmt.Errorf("cassandra init error: %w", err)
	}

	ar := accounts.NewStoreRepository(db)
	cr := credentials.NewStoreRepository(db)
	tr := teams.NewStoreRepository(db)
	mr := memberships.NewStoreRepository(db)
	pr := preferences.NewStoreRepository(db)
	sr := sessions.NewStoreRepository(db)

	guard := services.NewUniquenessGuard(db, logger)
	prov := services.NewProvisioningService(db, ar, cr, tr, guard, logger)
	auth := services.NewAuthService(ar, cr, sr, cfg, logger)

	h := httpapi.NewHandler(prov, auth, ar, tr, mr, pr, cfg, logger)

	return &App{config: cfg, logger: logger, db: db, handler: h}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: httpapi.NewRouter(app.handler),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddrHTTP)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.db.Close()
}
