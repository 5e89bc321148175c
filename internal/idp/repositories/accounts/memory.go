package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/dmitrijs2005/caresupport/internal/idp/models"
	"github.com/google/uuid"
)

// MemoryRepository is a process-local Repository for development runs and
// tests. Returned accounts are copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.Account
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    map[string]models.Account{},
		byEmail: map[string]string{},
	}
}

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now().UTC()
	r.byID[account.ID] = *account
	r.byEmail[account.Email] = account.ID
	return account, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, a.Email)
	return nil
}
