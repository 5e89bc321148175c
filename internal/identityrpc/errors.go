package identityrpc

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ErrorDomain = "identity.caresupport"

const (
	ReasonWeakPassword       = "WEAK_PASSWORD"
	ReasonInvalidEmail       = "INVALID_EMAIL"
	ReasonAccountExists      = "ACCOUNT_EXISTS"
	ReasonInvalidCredentials = "INVALID_CREDENTIALS"
	ReasonNoSession          = "NO_SESSION"
)

// StatusError builds a status error with code and message, attaching reason
// as an ErrorInfo detail when it is non-empty.
func StatusError(code codes.Code, reason, msg string) error {
	st := status.New(code, msg)
	if reason != "" {
		if detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain}); err == nil {
			st = detailed
		}
	}
	return st.Err()
}

// Reason extracts the ErrorInfo reason from a status error, or "".
func Reason(err error) string {
	var se interface{ GRPCStatus() *status.Status }
	if !errors.As(err, &se) {
		return ""
	}
	for _, d := range se.GRPCStatus().Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
