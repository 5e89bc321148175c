package accounts

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, newAccount())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, newAccount())
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	byEmail, err := repo.GetByEmail(ctx, "ann@example.org")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byEmail.DisplayName = "changed"
	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", byID.DisplayName)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), common.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "ann@example.org")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Create(ctx, newAccount())
	assert.NoError(t, err)
}
