package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/dmitrijs2005/caresupport/internal/identityrpc"
	"github.com/dmitrijs2005/caresupport/internal/idp/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) CreateAccount(ctx context.Context, req identityrpc.CreateAccountRequest) (identityrpc.AccountResponse, error) {
	sess, err := s.accounts.Create(ctx, req.Email, []byte(req.Password), req.DisplayName)
	if err != nil {
		return identityrpc.AccountResponse{}, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Account created", "user_id", sess.Account.ID)
	return response(sess), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req identityrpc.SignInRequest) (identityrpc.AccountResponse, error) {
	sess, err := s.accounts.SignIn(ctx, req.Email, []byte(req.Password))
	if err != nil {
		return identityrpc.AccountResponse{}, s.toStatus(ctx, err)
	}
	return response(sess), nil
}

func (s *GRPCServer) SignOut(ctx context.Context) error {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil
	}
	if err := s.accounts.SignOut(ctx, claims); err != nil {
		return s.toStatus(ctx, err)
	}
	return nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req identityrpc.DeleteAccountRequest) error {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return noSession()
	}
	if err := s.accounts.Delete(ctx, claims, req.UserID); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return noSession()
		}
		return s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Account deleted", "user_id", claims.UserID)
	return nil
}

func (s *GRPCServer) Ping(ctx context.Context) error {
	if err := s.accounts.Ping(ctx); err != nil {
		s.logger.Error(ctx, "storage unavailable", "error", err)
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return nil
}

func response(sess *services.Session) identityrpc.AccountResponse {
	return identityrpc.AccountResponse{
		UserID:      sess.Account.ID,
		Email:       sess.Account.Email,
		DisplayName: sess.Account.DisplayName,
		Token:       sess.Token,
	}
}

// toStatus maps service errors to status errors whose messages are shown to
// end users as they are.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		return identityrpc.StatusError(codes.InvalidArgument, identityrpc.ReasonInvalidEmail,
			"The email address is badly formatted.")
	case errors.Is(err, services.ErrWeakPassword):
		return identityrpc.StatusError(codes.InvalidArgument, identityrpc.ReasonWeakPassword,
			fmt.Sprintf("The password must be %d characters long or more.", s.minPasswordLength))
	case errors.Is(err, common.ErrAlreadyExists):
		return identityrpc.StatusError(codes.AlreadyExists, identityrpc.ReasonAccountExists,
			"The email address is already in use by another account.")
	case errors.Is(err, common.ErrUnauthorized):
		return identityrpc.StatusError(codes.Unauthenticated, identityrpc.ReasonInvalidCredentials,
			"The email or password is incorrect.")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
