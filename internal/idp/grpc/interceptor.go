package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/dmitrijs2005/caresupport/internal/identityrpc"
	"github.com/dmitrijs2005/caresupport/internal/idp/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// tokenMethods lists the methods that look at the session token. The value
// says whether a valid token is required; SignOut accepts a missing or stale
// token so that signing out is idempotent.
var tokenMethods = map[string]bool{
	identityrpc.MethodSignOut:       false,
	identityrpc.MethodDeleteAccount: true,
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok && c != nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	required, ok := tokenMethods[info.FullMethod]
	if !ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}

	if accessToken != "" {
		claims, err := s.accounts.Authenticate(ctx, accessToken)
		switch {
		case err == nil:
			ctx = context.WithValue(ctx, claimsKey, claims)
		case errors.Is(err, common.ErrInternal):
			return nil, status.Error(codes.Internal, "internal error")
		case required:
			return nil, noSession()
		}
	} else if required {
		return nil, noSession()
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start))
	return resp, err
}

func noSession() error {
	return identityrpc.StatusError(codes.Unauthenticated, identityrpc.ReasonNoSession, "No logged-in user.")
}
