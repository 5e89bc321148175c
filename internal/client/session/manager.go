package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/client/identity"
	"github.com/dmitrijs2005/caresupport/internal/logging"
)

type Manager struct {
	provider identity.Provider
	cache    Cache
	logger   logging.Logger
	timeout  time.Duration

	mu      sync.Mutex
	state   Session
	seq     uint64
	pending bool // a register, sign-in or deletion is in flight
	subs    map[int]chan Session
	nextSub int

	wg sync.WaitGroup
}

type Option func(*Manager)

// WithCache persists the signed-in account so Restore can pick it up.
func WithCache(c Cache) Option {
	return func(m *Manager) { m.cache = c }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithCallTimeout bounds every provider call. Zero means no limit.
func WithCallTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

func NewManager(p identity.Provider, opts ...Option) *Manager {
	m := &Manager{
		provider: p,
		logger:   logging.Nop(),
		subs:     make(map[int]chan Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("module", "session")
	return m
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel that receives the current session and then
// every published change. Delivery keeps only the latest value: a reader
// that falls behind skips intermediate states. cancel closes the channel.
func (m *Manager) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.state
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			close(ch)
			m.mu.Unlock()
		})
	}
	return ch, cancel
}

// publishLocked never blocks: m.mu is held and the manager is the only
// sender, so after draining a full buffer the send always fits.
func (m *Manager) publishLocked() {
	s := m.state
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func (m *Manager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(ctx, m.timeout)
	}
	return context.WithCancel(ctx)
}

// Register creates an account and signs it in. The returned channel yields
// the outcome once the session has been updated.
func (m *Manager) Register(ctx context.Context, email, password, displayName string) <-chan error {
	return m.authenticate(ctx, "register", email, password, func(ctx context.Context) (identity.Account, error) {
		return m.provider.CreateAccount(ctx, email, password, displayName)
	})
}

// SignIn authenticates an existing account. The returned channel yields
// the outcome once the session has been updated.
func (m *Manager) SignIn(ctx context.Context, email, password string) <-chan error {
	return m.authenticate(ctx, "sign_in", email, password, func(ctx context.Context) (identity.Account, error) {
		return m.provider.SignIn(ctx, email, password)
	})
}

func (m *Manager) authenticate(ctx context.Context, op, email, password string,
	call func(ctx context.Context) (identity.Account, error)) <-chan error {
	done := make(chan error, 1)

	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		done <- identity.NewError(identity.KindBusy, "")
		return done
	}

	m.state.LastError = nil
	if strings.TrimSpace(email) == "" || password == "" {
		err := &identity.Error{Kind: identity.KindInvalidInput, Message: "Email and password are required."}
		m.state.LastError = err
		m.publishLocked()
		m.mu.Unlock()
		done <- err
		return done
	}

	m.seq++
	seq := m.seq
	m.pending = true
	m.publishLocked()
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		callCtx, cancel := m.callContext(ctx)
		defer cancel()

		acc, err := call(callCtx)
		orphaned, res := m.completeAuth(ctx, op, seq, acc, err)
		if orphaned {
			m.revoke(ctx, acc)
		}
		done <- res
	}()
	return done
}

// completeAuth applies a provider result. orphaned is true when the result
// is a session the provider issued but the manager no longer wants.
func (m *Manager) completeAuth(ctx context.Context, op string, seq uint64, acc identity.Account, callErr error) (orphaned bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		m.logger.Debug(ctx, "discarding stale result", "op", op, "seq", seq, "current", m.seq)
		return callErr == nil, ErrSuperseded
	}
	m.pending = false

	if callErr == nil && !m.provider.Resume(acc) {
		callErr = identity.NewError(identity.KindProvider, "The account could not be signed in.")
	}
	if callErr != nil {
		e := identity.AsError(callErr)
		m.state.LastError = e
		m.publishLocked()
		m.logger.Warn(ctx, "authentication failed", "op", op, "kind", e.Kind.String())
		return false, e
	}

	m.state = Session{UserID: acc.UserID, Email: acc.Email, DisplayName: acc.DisplayName}
	if m.cache != nil {
		if err := m.cache.Save(ctx, acc); err != nil {
			m.logger.Warn(ctx, "failed to cache session", "error", err)
		}
	}
	m.publishLocked()
	m.logger.Info(ctx, "signed in", "op", op, "user_id", acc.UserID)
	return false, nil
}

func (m *Manager) revoke(ctx context.Context, acc identity.Account) {
	callCtx, cancel := m.callContext(context.WithoutCancel(ctx))
	defer cancel()
	if err := m.provider.Revoke(callCtx, acc); err != nil {
		m.logger.Warn(ctx, "failed to revoke superseded session", "user_id", acc.UserID, "error", err)
	}
}

// SignOut ends the session. The session is Unauthenticated afterwards even
// if the provider or the cache fails; such a failure is recorded in
// LastError and returned. Any register or sign-in still in flight is
// superseded.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.pending = false
	m.state = Session{}

	var failure *identity.Error
	if m.cache != nil {
		if err := m.cache.Clear(ctx); err != nil {
			failure = identity.AsError(err)
		}
	}
	m.publishLocked()
	m.mu.Unlock()

	callCtx, cancel := m.callContext(ctx)
	defer cancel()
	if err := m.provider.SignOut(callCtx); err != nil {
		failure = identity.AsError(err)
	}

	if failure == nil {
		m.logger.Info(ctx, "signed out")
		return nil
	}
	m.logger.Warn(ctx, "sign out failed", "error", failure)

	m.mu.Lock()
	if seq == m.seq {
		m.state.LastError = failure
		m.publishLocked()
	}
	m.mu.Unlock()
	return failure
}

// DeleteAccount deletes the signed-in account. Without a signed-in account
// it fails immediately with KindNoActiveSession and leaves the session
// untouched. While it runs, register and sign-in report KindBusy.
func (m *Manager) DeleteAccount(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	m.mu.Lock()
	if !m.state.Authenticated() {
		m.mu.Unlock()
		done <- identity.NewError(identity.KindNoActiveSession, "No logged-in user.")
		return done
	}
	if m.pending {
		m.mu.Unlock()
		done <- identity.NewError(identity.KindBusy, "")
		return done
	}
	m.state.LastError = nil
	m.seq++
	seq := m.seq
	m.pending = true
	userID := m.state.UserID
	m.publishLocked()
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		callCtx, cancel := m.callContext(ctx)
		defer cancel()

		err := m.provider.DeleteCurrentAccount(callCtx, userID)
		done <- m.completeDelete(ctx, seq, userID, err)
	}()
	return done
}

// completeDelete never drops a successful deletion: the account is gone at
// the provider, so a session still showing it is ended.
func (m *Manager) completeDelete(ctx context.Context, seq uint64, userID string, callErr error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := seq == m.seq
	if current {
		m.pending = false
	}

	if callErr != nil {
		if !current {
			m.logger.Debug(ctx, "discarding stale result", "op", "delete_account", "seq", seq, "current", m.seq)
			return ErrSuperseded
		}
		e := identity.AsError(callErr)
		m.state.LastError = e
		m.publishLocked()
		m.logger.Warn(ctx, "account deletion failed", "user_id", userID, "kind", e.Kind.String())
		return e
	}

	if m.state.UserID == userID {
		m.state = Session{}
		if m.cache != nil {
			if err := m.cache.Clear(ctx); err != nil {
				m.logger.Warn(ctx, "failed to clear cached session", "error", err)
			}
		}
		m.publishLocked()
	}
	m.logger.Info(ctx, "account deleted", "user_id", userID)
	return nil
}

// Restore adopts the account saved by a previous run, if any. It reports
// whether a session was restored. An already authenticated manager is left
// as is. A cached account the provider no longer accepts is discarded.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	if m.cache == nil {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Authenticated() || m.pending {
		return false, nil
	}
	acc, ok, err := m.cache.Load(ctx)
	if err != nil || !ok {
		return false, err
	}
	if !m.provider.Resume(acc) {
		m.logger.Info(ctx, "discarding cached session", "user_id", acc.UserID)
		return false, m.cache.Clear(ctx)
	}
	m.seq++
	m.state = Session{UserID: acc.UserID, Email: acc.Email, DisplayName: acc.DisplayName}
	m.publishLocked()
	m.logger.Info(ctx, "session restored", "user_id", acc.UserID)
	return true, nil
}

// ClearError dismisses LastError.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.LastError == nil {
		return
	}
	m.state.LastError = nil
	m.publishLocked()
}

// Wait blocks until all background provider calls have completed.
func (m *Manager) Wait() {
	m.wg.Wait()
}
