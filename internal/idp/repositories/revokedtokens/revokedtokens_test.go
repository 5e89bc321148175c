package revokedtokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/caresupport/internal/idp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgres_Revoke(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	exp := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	q := `(?s)INSERT\s+INTO\s+revoked_tokens\s*\(token_id,\s*user_id,\s*expires_at\).*ON\s+CONFLICT\s*\(token_id\)\s+DO\s+NOTHING`

	mock.ExpectExec(q).WithArgs("t-1", "u-1", exp).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WillReturnError(errors.New("boom"))

	tok := models.RevokedToken{TokenID: "t-1", UserID: "u-1", ExpiresAt: exp}
	assert.NoError(t, repo.Revoke(context.Background(), tok))
	assert.ErrorContains(t, repo.Revoke(context.Background(), tok), "db error: boom")
}

func TestPostgres_IsRevoked(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+revoked_tokens\s+WHERE\s+token_id\s*=\s*\$1\)`

	mock.ExpectQuery(q).WithArgs("t-1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(q).WithArgs("t-2").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(q).WithArgs("t-3").WillReturnError(errors.New("boom"))

	ok, err := repo.IsRevoked(context.Background(), "t-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsRevoked(context.Background(), "t-2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.IsRevoked(context.Background(), "t-3")
	assert.Error(t, err)
}

func TestPostgres_DeleteExpired(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE\s+FROM\s+revoked_tokens\s+WHERE\s+expires_at\s*<=\s*\$1`).
		WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Now()

	require.NoError(t, repo.Revoke(ctx, models.RevokedToken{TokenID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Revoke(ctx, models.RevokedToken{TokenID: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Revoke(ctx, models.RevokedToken{TokenID: "live", ExpiresAt: now.Add(-time.Hour)}))

	ok, _ := repo.IsRevoked(ctx, "old")
	assert.True(t, ok)
	ok, _ = repo.IsRevoked(ctx, "unknown")
	assert.False(t, ok)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, _ = repo.IsRevoked(ctx, "old")
	assert.False(t, ok)
	ok, _ = repo.IsRevoked(ctx, "live")
	assert.True(t, ok)
}
