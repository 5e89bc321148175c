// Package identityrpc is the gRPC contract between the CareSupport client and
// the identity service.
//
// Messages travel as google.protobuf.Struct values so the contract needs no
// generated code: every request and response type here converts itself to and
// from a *structpb.Struct. The service descriptor is written by hand and is
// registered with RegisterIdentityServer; callers use Client.
//
// Failures are gRPC status errors. Where the code alone is ambiguous the
// status carries an errdetails.ErrorInfo with Domain == ErrorDomain and one of
// the Reason* values.
package identityrpc
