package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/caresupport/internal/client/identity"
	"github.com/dmitrijs2005/caresupport/internal/client/session"
	"github.com/dmitrijs2005/caresupport/internal/common"
)

// Register prompts for email, name and password and creates an account.
// On success the new account is signed in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter your name (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := <-a.session.Register(ctx, email, string(password), name); err != nil {
		a.reportFailure("Registration failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.displayName())
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := <-a.session.SignIn(ctx, email, string(password)); err != nil {
		a.reportFailure("Login failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Hello, %s! Choose what you want to do today.\n", a.displayName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not log out. Please try again.")
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// DeleteAccount asks for confirmation, deletes the account and then removes
// the user's local diary data.
func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, identity.ErrNoActiveSession.Error())
		return identity.ErrNoActiveSession
	}
	answer, err := getSimpleText(a.reader,
		"Delete account? Your account and data will be removed. This cannot be undone. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	st := a.currentStore(ctx)
	if err := <-a.session.DeleteAccount(ctx); err != nil {
		a.reportFailure("Could not delete account", err)
		return err
	}
	if st != nil {
		if err := st.PurgeUser(ctx); err != nil {
			a.logger.Error(ctx, "could not remove local diary data", "user_id", st.UserID(), "error", err)
		}
	}
	fmt.Fprintln(a.out, "Your account has been deleted.")
	return nil
}

func (a *App) reportFailure(prefix string, err error) {
	if errors.Is(err, session.ErrSuperseded) {
		fmt.Fprintf(a.out, "%s: the request was overtaken by a newer one.\n", prefix)
		return
	}
	fmt.Fprintf(a.out, "%s: %s\n", prefix, identity.AsError(err).Error())
}
