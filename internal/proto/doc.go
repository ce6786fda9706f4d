// Package proto is the wire contract of the userdir gRPC bridge.
//
// The bridge exposes the user collection store to remote presentation
// shells. Messages are plain Go structs carried by a JSON codec registered
// under the "json" content subtype, so the service descriptor below is
// written by hand instead of being generated from a .proto file.
//
//	service userdir.DirectoryService {
//	  rpc GetState(google.protobuf.Empty) returns (StateMessage);
//	  rpc FetchAll(FetchAllRequest)       returns (StateMessage);
//	  rpc AddLocal(AddLocalRequest)       returns (UserMessage);
//	  rpc Update(UpdateRequest)           returns (UpdateResponse);
//	  rpc Remove(RemoveRequest)           returns (RemoveResponse);
//	  rpc GetUser(GetUserRequest)         returns (UserMessage);
//	}
package proto
