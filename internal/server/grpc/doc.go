// Package grpc exposes a user collection store over gRPC so that a remote
// presentation shell can read its state and call its operations.
//
// Calls use the JSON codec registered by the proto package. When the server
// is built with a non-empty secret every call must carry a bridge token in
// the access_token metadata key.
package grpc
