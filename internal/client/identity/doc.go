// Package identity is the client's boundary to the identity provider.
//
// Provider abstracts account creation, sign-in, sign-out and deletion.
// GRPCProvider talks to the identity service over gRPC; MemoryProvider keeps
// accounts in process and is used for offline runs and tests.
//
// Every provider failure is reported as an *Error carrying a Kind from a
// closed set, so callers can switch on the kind instead of parsing messages.
package identity
