package identityrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// IdentityServer is implemented by the identity service.
type IdentityServer interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (AccountResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (AccountResponse, error)
	SignOut(ctx context.Context) error
	DeleteAccount(ctx context.Context, req DeleteAccountRequest) error
	Ping(ctx context.Context) error
}

// RegisterIdentityServer registers srv on s.
func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateAccount", Handler: unary(MethodCreateAccount, createAccount)},
		{MethodName: "SignIn", Handler: unary(MethodSignIn, signIn)},
		{MethodName: "SignOut", Handler: unary(MethodSignOut, signOut)},
		{MethodName: "DeleteAccount", Handler: unary(MethodDeleteAccount, deleteAccount)},
		{MethodName: "Ping", Handler: unary(MethodPing, ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "caresupport/identity/v1/identity.proto",
}

type call func(srv IdentityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

// unary adapts a typed call to grpc.MethodHandler, running it through the
// server's interceptor chain.
func unary(fullMethod string, fn call) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(IdentityServer), ctx, req.(*structpb.Struct))
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

func createAccount(srv IdentityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	resp, err := srv.CreateAccount(ctx, CreateAccountRequestFrom(in))
	if err != nil {
		return nil, err
	}
	return resp.Proto()
}

func signIn(srv IdentityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	resp, err := srv.SignIn(ctx, SignInRequestFrom(in))
	if err != nil {
		return nil, err
	}
	return resp.Proto()
}

func signOut(srv IdentityServer, ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := srv.SignOut(ctx); err != nil {
		return nil, err
	}
	return &structpb.Struct{}, nil
}

func deleteAccount(srv IdentityServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := srv.DeleteAccount(ctx, DeleteAccountRequestFrom(in)); err != nil {
		return nil, err
	}
	return &structpb.Struct{}, nil
}

func ping(srv IdentityServer, ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := srv.Ping(ctx); err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]any{"status": "OK"})
}
