package identity

import "context"

// Account is a signed-in account as reported by a provider.
type Account struct {
	UserID      string
	Email       string
	DisplayName string
	Token       string
}

// Provider performs account operations against an identity provider. All
// failures are returned as *Error.
//
// CreateAccount and SignIn only issue an account. It becomes the provider's
// current account once passed to Resume; SignOut and DeleteCurrentAccount
// act on the current account.
type Provider interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (Account, error)
	SignIn(ctx context.Context, email, password string) (Account, error)
	// Resume makes acc current. It reports false when the provider cannot
	// use acc, e.g. the account no longer exists.
	Resume(acc Account) bool
	// Revoke ends an issued session that was never made current.
	Revoke(ctx context.Context, acc Account) error
	SignOut(ctx context.Context) error
	DeleteCurrentAccount(ctx context.Context, userID string) error
}
