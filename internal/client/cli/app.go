package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/caresupport/internal/client/config"
	"github.com/dmitrijs2005/caresupport/internal/client/diary"
	"github.com/dmitrijs2005/caresupport/internal/client/export"
	"github.com/dmitrijs2005/caresupport/internal/client/identity"
	"github.com/dmitrijs2005/caresupport/internal/client/repositories/entries"
	"github.com/dmitrijs2005/caresupport/internal/client/session"
	"github.com/dmitrijs2005/caresupport/internal/client/storage"
	"github.com/dmitrijs2005/caresupport/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	provider identity.Provider
	session  *session.Manager
	repo     diary.Repository
	sink     export.Sink
	reader   *bufio.Reader
	out      io.Writer
	closers  []func() error

	mu    sync.Mutex
	store *diary.Store
}

// NewApp wires the client from cfg: SQLite storage when a DSN is given
// (memory otherwise), the configured identity provider and the report sink.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{
		config: cfg,
		logger: logger.With("module", "cli"),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	var cache session.Cache
	if cfg.DatabaseDSN != "" {
		db, err := storage.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.repo = entries.NewSQLiteRepository(db)
		cache = session.NewSQLiteCache(db)
	} else {
		a.repo = diary.NewMemoryRepository()
	}

	switch cfg.Provider {
	case config.ProviderMemory:
		a.provider = identity.NewMemoryProvider()
	default:
		p, err := identity.NewGRPCProvider(cfg.IdentityEndpointAddr)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect identity service: %w", err)
		}
		a.closers = append(a.closers, p.Close)
		a.provider = p
	}

	if cfg.S3Bucket != "" {
		sink, err := export.NewS3Sink(ctx, export.S3Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.sink = sink
	} else {
		a.sink = export.FileSink{Dir: cfg.ReportDir}
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithCallTimeout(cfg.CallTimeout),
	}
	if cache != nil {
		opts = append(opts, session.WithCache(cache))
	}
	a.session = session.NewManager(a.provider, opts...)
	return a, nil
}

// Run restores a cached session, starts the session watcher and serves the
// REPL on stdin until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	if ok, err := a.session.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	} else if ok {
		fmt.Fprintf(a.out, "Welcome back, %s.\n", a.displayName())
	}
	a.pingProvider(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	updates, unsubscribe := a.session.Subscribe()
	defer unsubscribe()
	go a.watchSession(watchCtx, updates)

	fmt.Fprintln(a.out, "Care Support (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) pingProvider(ctx context.Context) {
	p, ok := a.provider.(interface{ Ping(context.Context) error })
	if !ok {
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx, a.config.CallTimeout)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		a.logger.Warn(ctx, "identity service unreachable", "addr", a.config.IdentityEndpointAddr, "error", err)
	}
}

// watchSession keeps the diary store in step with the signed-in user.
func (a *App) watchSession(ctx context.Context, updates <-chan session.Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			if _, err := a.storeFor(ctx, s); err != nil {
				a.logger.Error(ctx, "could not open diary", "user_id", s.UserID, "error", err)
			}
		}
	}
}

// storeFor returns the store of the user in s, opening it if the user
// changed. It returns nil for an unauthenticated session.
func (a *App) storeFor(ctx context.Context, s session.Session) (*diary.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !s.Authenticated() {
		a.store = nil
		return nil, nil
	}
	if a.store != nil && a.store.UserID() == s.UserID {
		return a.store, nil
	}
	st := diary.NewStore(s.UserID, a.repo)
	if err := st.Load(ctx); err != nil {
		return nil, err
	}
	a.store = st
	a.logger.Debug(ctx, "diary opened", "user_id", s.UserID)
	return st, nil
}

// currentStore returns the signed-in user's store, or nil after telling the
// user to log in.
func (a *App) currentStore(ctx context.Context) *diary.Store {
	s := a.session.Snapshot()
	if !s.Authenticated() {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil
	}
	st, err := a.storeFor(ctx, s)
	if err != nil {
		fmt.Fprintln(a.out, "Could not open your diary:", err)
		return nil
	}
	return st
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

func (a *App) displayName() string {
	s := a.session.Snapshot()
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Email
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.displayName())
}

// Close waits for in-flight identity calls and releases resources.
func (a *App) Close() {
	if a.session != nil {
		a.session.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}
