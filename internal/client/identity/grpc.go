package identity

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/dmitrijs2005/caresupport/internal/identityrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCProvider is a Provider backed by the identity service.
type GRPCProvider struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *identityrpc.Client

	mu          sync.Mutex
	accessToken string
}

// NewGRPCProvider connects to the identity service at endpointURL. Extra
// dial options are applied after the defaults.
func NewGRPCProvider(endpointURL string, opts ...grpc.DialOption) (*GRPCProvider, error) {
	p := &GRPCProvider{endpointURL: endpointURL}
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(p.accessTokenInterceptor),
	}, opts...)
	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	p.conn = conn
	p.client = identityrpc.NewClient(conn)
	return p, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (p *GRPCProvider) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	md, _ := metadata.FromOutgoingContext(ctx)
	if len(md.Get(common.AccessTokenHeaderName)) > 0 {
		return invoker(ctx, method, req, reply, cc, opts...)
	}
	if token := p.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (p *GRPCProvider) token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accessToken
}

func (p *GRPCProvider) setToken(t string) {
	p.mu.Lock()
	p.accessToken = t
	p.mu.Unlock()
}

// swapToken replaces the token and returns the previous one.
func (p *GRPCProvider) swapToken(t string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.accessToken
	p.accessToken = t
	return old
}

// dropToken forgets the token only if it is still t.
func (p *GRPCProvider) dropToken(t string) {
	p.mu.Lock()
	if p.accessToken == t {
		p.accessToken = ""
	}
	p.mu.Unlock()
}

func (p *GRPCProvider) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

func (p *GRPCProvider) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	resp, err := p.client.CreateAccount(ctx, identityrpc.CreateAccountRequest{
		Email: email, Password: password, DisplayName: displayName,
	})
	if err != nil {
		return Account{}, mapError(err)
	}
	return accountFrom(resp), nil
}

func (p *GRPCProvider) SignIn(ctx context.Context, email, password string) (Account, error) {
	resp, err := p.client.SignIn(ctx, identityrpc.SignInRequest{Email: email, Password: password})
	if err != nil {
		return Account{}, mapError(err)
	}
	return accountFrom(resp), nil
}

// SignOut always forgets the local token, before the remote call. A remote
// failure is still reported so the caller can surface it.
func (p *GRPCProvider) SignOut(ctx context.Context) error {
	return p.revokeToken(ctx, p.swapToken(""))
}

// Revoke signs acc's token out at the service. The current token is kept.
func (p *GRPCProvider) Revoke(ctx context.Context, acc Account) error {
	return p.revokeToken(ctx, acc.Token)
}

func (p *GRPCProvider) revokeToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := p.client.SignOut(withAccessToken(ctx, token)); err != nil {
		return mapError(err)
	}
	return nil
}

func (p *GRPCProvider) DeleteCurrentAccount(ctx context.Context, userID string) error {
	token := p.token()
	if token == "" {
		return NewError(KindNoActiveSession, "")
	}
	if err := p.client.DeleteAccount(withAccessToken(ctx, token), identityrpc.DeleteAccountRequest{UserID: userID}); err != nil {
		return mapError(err)
	}
	p.dropToken(token)
	return nil
}

// Resume adopts acc's token. The service checks it on the next call.
func (p *GRPCProvider) Resume(acc Account) bool {
	if acc.Token == "" {
		return false
	}
	p.setToken(acc.Token)
	return true
}

// Ping checks that the identity service is reachable.
func (p *GRPCProvider) Ping(ctx context.Context) error {
	st, err := p.client.Ping(ctx)
	if err != nil {
		return mapError(err)
	}
	if st != "OK" {
		return NewError(KindNetworkUnavailable, "")
	}
	return nil
}

func accountFrom(r identityrpc.AccountResponse) Account {
	return Account{UserID: r.UserID, Email: r.Email, DisplayName: r.DisplayName, Token: r.Token}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return AsError(err)
	}
	st, ok := status.FromError(err)
	if !ok {
		return AsError(err)
	}

	kind := KindProvider
	switch identityrpc.Reason(err) {
	case identityrpc.ReasonWeakPassword:
		kind = KindWeakPassword
	case identityrpc.ReasonInvalidEmail, identityrpc.ReasonInvalidCredentials:
		kind = KindInvalidCredentials
	case identityrpc.ReasonAccountExists:
		kind = KindAccountAlreadyExists
	case identityrpc.ReasonNoSession:
		kind = KindNoActiveSession
	default:
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
			return &Error{Kind: KindNetworkUnavailable, Message: defaultMessage(KindNetworkUnavailable), Err: err}
		case codes.AlreadyExists:
			kind = KindAccountAlreadyExists
		case codes.Unauthenticated, codes.PermissionDenied, codes.NotFound, codes.InvalidArgument:
			kind = KindInvalidCredentials
		case codes.FailedPrecondition:
			kind = KindNoActiveSession
		}
	}

	msg := st.Message()
	if msg == "" {
		msg = defaultMessage(kind)
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}
