// Package repomanager vends the identity service's repositories for one
// storage backend and runs work against them transactionally.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/caresupport/internal/idp/repositories/accounts"
	"github.com/dmitrijs2005/caresupport/internal/idp/repositories/revokedtokens"
)

// Repositories groups repositories bound to the same connection or
// transaction.
type Repositories struct {
	Accounts      accounts.Repository
	RevokedTokens revokedtokens.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Repositories() Repositories
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
	Close() error
}
