// Package accounts stores identity service accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/caresupport/internal/idp/models"
)

// Repository persists accounts. Emails are stored already normalised.
// Create returns common.ErrAlreadyExists for a taken email; lookups and
// Delete return common.ErrNotFound for missing accounts.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}
