// Package idp runs the reference identity service: account storage, the
// identity gRPC endpoint and an HTTP health endpoint.
package idp

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

	"github.com/dmitrijs2005/caresupport/internal/idp/config"
	"github.com/dmitrijs2005/caresupport/internal/idp/httpapi"
	"github.com/dmitrijs2005/caresupport/internal/idp/repositories/repomanager"
	"github.com/dmitrijs2005/caresupport/internal/idp/services"
	"github.com/dmitrijs2005/caresupport/internal/logging"
	"go.uber.org/zap"

	gs "github.com/dmitrijs2005/caresupport/internal/idp/grpc"
)

// purgeInterval is how often expired entries leave the token deny list.
const purgeInterval = time.Hour

type App struct {
	config   *config.Config
	zap      *zap.Logger
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	accounts *services.AccountService
}

// openPostgres is a seam for tests.
var openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	return repomanager.OpenPostgres(ctx, dsn)
}

func NewApp(ctx context.Context, c *config.Config, zl *zap.Logger) (*App, error) {
	logger := logging.NewZapLogger(zl)

	var repos repomanager.RepositoryManager
	switch c.Storage {
	case config.StorageMemory:
		repos = repomanager.NewMemoryRepositoryManager()
	default:
		m, err := openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		repos = m
	}

	if err := repos.RunMigrations(ctx); err != nil {
		repos.Close()
		return nil, err
	}

	return &App{
		config:   c,
		zap:      zl,
		logger:   logger,
		repos:    repos,
		accounts: services.NewAccountService(repos, c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts, app.config.MinPasswordLength)
	return s.Run(ctx)
}

func (app *App) startHTTPServer(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           httpapi.NewRouter(app.accounts, app.zap),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) purgeRevokedTokens(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.accounts.PurgeRevoked(ctx)
			if err != nil {
				app.logger.Warn(ctx, "could not purge revoked tokens", "error", err)
				continue
			}
			app.logger.Debug(ctx, "purged revoked tokens", "count", n)
		}
	}
}

// Run serves until ctx is done, a termination signal arrives, or a server
// fails. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.startGRPCServer(ctx); err != nil {
			fail(fmt.Errorf("grpc server: %w", err))
		}
	}()
	go func() {
		defer wg.Done()
		app.purgeRevokedTokens(ctx)
	}()

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.startHTTPServer(ctx); err != nil {
				fail(fmt.Errorf("http server: %w", err))
			}
		}()
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}

func (app *App) Close() error {
	return app.repos.Close()
}
