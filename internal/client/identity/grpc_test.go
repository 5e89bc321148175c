package identity

import (
	"context"
	"net"
	"testing"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/dmitrijs2005/caresupport/internal/identityrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeIdentityServer struct {
	createErr error
	signInErr error
	deleteErr error

	lastToken  string
	lastDelete string
}

func tokenFrom(ctx context.Context) string {
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (f *fakeIdentityServer) CreateAccount(_ context.Context, req identityrpc.CreateAccountRequest) (identityrpc.AccountResponse, error) {
	if f.createErr != nil {
		return identityrpc.AccountResponse{}, f.createErr
	}
	return identityrpc.AccountResponse{UserID: "u-1", Email: req.Email, DisplayName: req.DisplayName, Token: "tok-1"}, nil
}

func (f *fakeIdentityServer) SignIn(_ context.Context, req identityrpc.SignInRequest) (identityrpc.AccountResponse, error) {
	if f.signInErr != nil {
		return identityrpc.AccountResponse{}, f.signInErr
	}
	return identityrpc.AccountResponse{UserID: "u-1", Email: req.Email, Token: "tok-2"}, nil
}

func (f *fakeIdentityServer) SignOut(ctx context.Context) error {
	f.lastToken = tokenFrom(ctx)
	return nil
}

func (f *fakeIdentityServer) DeleteAccount(ctx context.Context, req identityrpc.DeleteAccountRequest) error {
	f.lastToken = tokenFrom(ctx)
	f.lastDelete = req.UserID
	return f.deleteErr
}

func (f *fakeIdentityServer) Ping(context.Context) error { return nil }

func newBufProvider(t *testing.T, srv identityrpc.IdentityServer) *GRPCProvider {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	identityrpc.RegisterIdentityServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	p, err := NewGRPCProvider("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestGRPCProvider_TokenFlow(t *testing.T) {
	fs := &fakeIdentityServer{}
	p := newBufProvider(t, fs)
	ctx := context.Background()

	require.NoError(t, p.Ping(ctx))

	acc, err := p.CreateAccount(ctx, "a@b.com", "secret1", "Ann")
	require.NoError(t, err)
	assert.Equal(t, Account{UserID: "u-1", Email: "a@b.com", DisplayName: "Ann", Token: "tok-1"}, acc)
	assert.Empty(t, p.token(), "issued accounts are not adopted")

	signed, err := p.SignIn(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	require.True(t, p.Resume(signed))

	require.NoError(t, p.DeleteCurrentAccount(ctx, "u-1"))
	assert.Equal(t, "tok-2", fs.lastToken)
	assert.Equal(t, "u-1", fs.lastDelete)

	// token is gone after deletion
	assert.ErrorIs(t, p.DeleteCurrentAccount(ctx, "u-1"), ErrNoActiveSession)
}

func TestGRPCProvider_SignOutForgetsToken(t *testing.T) {
	fs := &fakeIdentityServer{}
	p := newBufProvider(t, fs)
	ctx := context.Background()

	p.Resume(Account{UserID: "u-9", Token: "cached"})
	require.NoError(t, p.SignOut(ctx))
	assert.Equal(t, "cached", fs.lastToken)
	assert.Empty(t, p.token())

	fs.lastToken = ""
	require.NoError(t, p.SignOut(ctx))
	assert.Empty(t, fs.lastToken, "no remote call without a token")
}

func TestGRPCProvider_RevokeKeepsCurrentToken(t *testing.T) {
	fs := &fakeIdentityServer{}
	p := newBufProvider(t, fs)
	ctx := context.Background()

	require.True(t, p.Resume(Account{UserID: "u-1", Token: "current"}))
	require.NoError(t, p.Revoke(ctx, Account{UserID: "u-1", Token: "orphan"}))
	assert.Equal(t, "orphan", fs.lastToken)
	assert.Equal(t, "current", p.token())

	fs.lastToken = ""
	require.NoError(t, p.Revoke(ctx, Account{UserID: "u-1"}))
	assert.Empty(t, fs.lastToken)
	assert.False(t, p.Resume(Account{UserID: "u-1"}))
}

func TestGRPCProvider_MapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    Kind
		wantMsg string
	}{
		{"weak password", identityrpc.StatusError(codes.InvalidArgument, identityrpc.ReasonWeakPassword, "too short"), KindWeakPassword, "too short"},
		{"invalid email", identityrpc.StatusError(codes.InvalidArgument, identityrpc.ReasonInvalidEmail, "bad email"), KindInvalidCredentials, "bad email"},
		{"exists by reason", identityrpc.StatusError(codes.InvalidArgument, identityrpc.ReasonAccountExists, "taken"), KindAccountAlreadyExists, "taken"},
		{"exists by code", status.Error(codes.AlreadyExists, "dup"), KindAccountAlreadyExists, "dup"},
		{"unauthenticated", status.Error(codes.Unauthenticated, ""), KindInvalidCredentials, "The email or password is incorrect."},
		{"unavailable", status.Error(codes.Unavailable, "down"), KindNetworkUnavailable, "A network error has occurred. Check your connection and try again."},
		{"internal", status.Error(codes.Internal, "db exploded"), KindProvider, "db exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newBufProvider(t, &fakeIdentityServer{createErr: tt.err})
			_, err := p.CreateAccount(context.Background(), "a@b.com", "secret1", "")
			require.Error(t, err)
			e := AsError(err)
			assert.Equal(t, tt.want, e.Kind)
			assert.Equal(t, tt.wantMsg, e.Message)
			assert.Empty(t, p.token())
		})
	}
}

func TestGRPCProvider_DeleteNoSessionReason(t *testing.T) {
	fs := &fakeIdentityServer{deleteErr: identityrpc.StatusError(codes.Unauthenticated, identityrpc.ReasonNoSession, "session ended")}
	p := newBufProvider(t, fs)
	p.Resume(Account{UserID: "u-1", Token: "stale"})

	err := p.DeleteCurrentAccount(context.Background(), "u-1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Equal(t, "stale", p.token(), "token kept when deletion fails")
}

func TestMapError_Plain(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(context.DeadlineExceeded), ErrNetworkUnavailable)
}
