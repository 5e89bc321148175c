package identity

import (
	"context"
	"errors"
)

// Kind classifies provider failures.
type Kind int

const (
	KindProvider Kind = iota
	KindInvalidCredentials
	KindAccountAlreadyExists
	KindWeakPassword
	KindNetworkUnavailable
	KindNoActiveSession
	KindInvalidInput
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindAccountAlreadyExists:
		return "account_already_exists"
	case KindWeakPassword:
		return "weak_password"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindNoActiveSession:
		return "no_active_session"
	case KindInvalidInput:
		return "invalid_input"
	case KindBusy:
		return "busy"
	default:
		return "provider_error"
	}
}

// Error is a classified provider failure. Message is the human-readable text
// shown to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return defaultMessage(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so the Err*
// sentinels below match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCredentials   = &Error{Kind: KindInvalidCredentials}
	ErrAccountAlreadyExists = &Error{Kind: KindAccountAlreadyExists}
	ErrWeakPassword         = &Error{Kind: KindWeakPassword}
	ErrNetworkUnavailable   = &Error{Kind: KindNetworkUnavailable}
	ErrNoActiveSession      = &Error{Kind: KindNoActiveSession}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
	ErrBusy                 = &Error{Kind: KindBusy}
)

// AsError classifies any error as an *Error. Context cancellation and
// deadlines count as network failures; anything unrecognised becomes
// KindProvider with the original message.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindNetworkUnavailable, Message: defaultMessage(KindNetworkUnavailable), Err: err}
	}
	return &Error{Kind: KindProvider, Message: err.Error(), Err: err}
}

// KindOf returns the Kind of err, or KindProvider for unclassified errors.
func KindOf(err error) Kind {
	return AsError(err).Kind
}

func defaultMessage(k Kind) string {
	switch k {
	case KindInvalidCredentials:
		return "The email or password is incorrect."
	case KindAccountAlreadyExists:
		return "The email address is already in use by another account."
	case KindWeakPassword:
		return "The password must be 6 characters long or more."
	case KindNetworkUnavailable:
		return "A network error has occurred. Check your connection and try again."
	case KindNoActiveSession:
		return "No logged-in user."
	case KindInvalidInput:
		return "Email and password are required."
	case KindBusy:
		return "Another request is already in progress."
	default:
		return "An internal error has occurred."
	}
}
