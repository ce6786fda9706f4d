// Package client contains the transport side of the userdir client.
//
// # Overview
//
// The package provides:
//  1. The Directory contract consumed by the collection store: read the full
//     user collection or a single user by id.
//  2. HTTPClient, the Directory implementation for the upstream REST API
//     (GET /users, GET /users/{id}), with a per-call timeout and an
//     X-Request-ID header on every request.
//  3. BridgeClient, a gRPC client for a running userdir bridge, which
//     injects the access token via an interceptor and maps status codes to
//     sentinel errors.
//
// # Error Handling
//
// Transport failures are reported as sentinel errors that callers match with
// errors.Is: ErrNetwork, ErrTimeout (a specialisation of ErrNetwork),
// ErrNotFound, ErrUnavailable, ErrUnauthorized. Describe turns any of them
// into a message fit for the user.
package client
