// Package grpc serves the identity contract from internal/identityrpc on top
// of the account service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/caresupport/internal/identityrpc"
	"github.com/dmitrijs2005/caresupport/internal/idp/auth"
	"github.com/dmitrijs2005/caresupport/internal/idp/services"
	"github.com/dmitrijs2005/caresupport/internal/logging"
	"google.golang.org/grpc"
)

// AccountService is the part of services.AccountService the server uses.
type AccountService interface {
	Create(ctx context.Context, email string, password []byte, displayName string) (*services.Session, error)
	SignIn(ctx context.Context, email string, password []byte) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	SignOut(ctx context.Context, claims *auth.Claims) error
	Delete(ctx context.Context, claims *auth.Claims, userID string) error
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	address           string
	accounts          AccountService
	logger            logging.Logger
	minPasswordLength int
}

func NewGRPCServer(a string, l logging.Logger, accounts AccountService, minPasswordLength int) *GRPCServer {
	return &GRPCServer{
		address:           a,
		logger:            l.With("module", "grpc_server"),
		accounts:          accounts,
		minPasswordLength: minPasswordLength,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	identityrpc.RegisterIdentityServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
