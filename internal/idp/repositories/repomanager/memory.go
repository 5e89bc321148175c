package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/caresupport/internal/idp/repositories/accounts"
	"github.com/dmitrijs2005/caresupport/internal/idp/repositories/revokedtokens"
)

// MemoryRepositoryManager keeps everything in process memory. WithTx
// serialises callers but cannot roll back partial work.
type MemoryRepositoryManager struct {
	mu    sync.Mutex
	repos Repositories
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repos: Repositories{
		Accounts:      accounts.NewMemoryRepository(),
		RevokedTokens: revokedtokens.NewMemoryRepository(),
	}}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Repositories() Repositories { return m.repos }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m.repos)
}

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
