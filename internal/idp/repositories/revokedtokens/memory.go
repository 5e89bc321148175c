package revokedtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/idp/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]models.RevokedToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: map[string]models.RevokedToken{}}
}

func (r *MemoryRepository) Revoke(_ context.Context, token models.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token.TokenID]; !ok {
		r.tokens[token.TokenID] = token
	}
	return nil
}

func (r *MemoryRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[tokenID]
	return ok, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tokens {
		if !t.ExpiresAt.After(now) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}
