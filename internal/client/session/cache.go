package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/caresupport/internal/client/identity"
	"github.com/dmitrijs2005/caresupport/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/caresupport/internal/dbx"
)

// Cache keeps the signed-in account across restarts.
type Cache interface {
	Save(ctx context.Context, acc identity.Account) error
	Load(ctx context.Context) (acc identity.Account, ok bool, err error)
	Clear(ctx context.Context) error
}

const (
	keyPrefix      = "session."
	keyUserID      = keyPrefix + "user_id"
	keyEmail       = keyPrefix + "email"
	keyDisplayName = keyPrefix + "display_name"
	keyToken       = keyPrefix + "token"
)

// SQLiteCache stores the account in the metadata table.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(db *sql.DB) *SQLiteCache {
	return &SQLiteCache{db: db}
}

func (c *SQLiteCache) Save(ctx context.Context, acc identity.Account) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		pairs := [][2]string{
			{keyUserID, acc.UserID},
			{keyEmail, acc.Email},
			{keyDisplayName, acc.DisplayName},
			{keyToken, acc.Token},
		}
		for _, kv := range pairs {
			if err := repo.Set(ctx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *SQLiteCache) Load(ctx context.Context) (identity.Account, bool, error) {
	m, err := metadata.NewSQLiteRepository(c.db).List(ctx, keyPrefix)
	if err != nil {
		return identity.Account{}, false, fmt.Errorf("load cached session: %w", err)
	}
	acc := identity.Account{
		UserID:      m[keyUserID],
		Email:       m[keyEmail],
		DisplayName: m[keyDisplayName],
		Token:       m[keyToken],
	}
	if acc.UserID == "" {
		return identity.Account{}, false, nil
	}
	return acc, true, nil
}

func (c *SQLiteCache) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(c.db).Delete(ctx, keyUserID, keyEmail, keyDisplayName, keyToken)
}
