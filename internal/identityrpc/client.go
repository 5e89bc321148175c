package identityrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is a typed caller for the identity service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest, opts ...grpc.CallOption) (AccountResponse, error) {
	in, err := req.Proto()
	if err != nil {
		return AccountResponse{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodCreateAccount, in, out, opts...); err != nil {
		return AccountResponse{}, err
	}
	return AccountResponseFrom(out), nil
}

func (c *Client) SignIn(ctx context.Context, req SignInRequest, opts ...grpc.CallOption) (AccountResponse, error) {
	in, err := req.Proto()
	if err != nil {
		return AccountResponse{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodSignIn, in, out, opts...); err != nil {
		return AccountResponse{}, err
	}
	return AccountResponseFrom(out), nil
}

func (c *Client) SignOut(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, MethodSignOut, &structpb.Struct{}, new(structpb.Struct), opts...)
}

func (c *Client) DeleteAccount(ctx context.Context, req DeleteAccountRequest, opts ...grpc.CallOption) error {
	in, err := req.Proto()
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, MethodDeleteAccount, in, new(structpb.Struct), opts...)
}

// Ping returns the status string reported by the service ("OK" when healthy).
func (c *Client) Ping(ctx context.Context, opts ...grpc.CallOption) (string, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodPing, &structpb.Struct{}, out, opts...); err != nil {
		return "", err
	}
	return str(out, "status"), nil
}
