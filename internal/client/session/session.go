// Package session owns the client's authentication state.
//
// A Manager holds the single Session value and is its only writer. Provider
// calls run in the background; their results are applied under the
// manager's lock and published to subscribers. Every state change bumps a
// sequence number, and a provider result that comes back after a newer
// change is discarded, so a late sign-in can never resurrect a session the
// user has already signed out of.
package session

import (
	"errors"

	"github.com/dmitrijs2005/caresupport/internal/client/identity"
)

// Session is an immutable snapshot of the authentication state.
type Session struct {
	UserID      string
	Email       string
	DisplayName string

	// LastError is the failure of the most recent operation, if it failed.
	LastError *identity.Error
}

func (s Session) Authenticated() bool { return s.UserID != "" }

// ErrSuperseded is returned to the caller of an operation whose provider
// result arrived after a newer operation had already changed the session.
var ErrSuperseded = errors.New("session: superseded by a newer operation")
