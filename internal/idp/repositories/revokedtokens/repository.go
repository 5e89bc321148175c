// Package revokedtokens keeps the deny list of signed-out session tokens.
package revokedtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/idp/models"
)

// Repository stores revoked token ids. Revoking an id twice is not an error.
type Repository interface {
	Revoke(ctx context.Context, token models.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	// DeleteExpired drops entries whose token has expired by now and returns
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
