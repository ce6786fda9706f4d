package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "userdir.DirectoryService"

const (
	DirectoryService_GetState_FullMethodName = "/userdir.DirectoryService/GetState"
	DirectoryService_FetchAll_FullMethodName = "/userdir.DirectoryService/FetchAll"
	DirectoryService_AddLocal_FullMethodName = "/userdir.DirectoryService/AddLocal"
	DirectoryService_Update_FullMethodName   = "/userdir.DirectoryService/Update"
	DirectoryService_Remove_FullMethodName   = "/userdir.DirectoryService/Remove"
	DirectoryService_GetUser_FullMethodName  = "/userdir.DirectoryService/GetUser"
)

// DirectoryServiceClient is the client API for DirectoryService.
type DirectoryServiceClient interface {
	GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*StateMessage, error)
	FetchAll(ctx context.Context, in *FetchAllRequest, opts ...grpc.CallOption) (*StateMessage, error)
	AddLocal(ctx context.Context, in *AddLocalRequest, opts ...grpc.CallOption) (*UserMessage, error)
	Update(ctx context.Context, in *UpdateRequest, opts ...grpc.CallOption) (*UpdateResponse, error)
	Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*RemoveResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserMessage, error)
}

type directoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectoryServiceClient(cc grpc.ClientConnInterface) DirectoryServiceClient {
	return &directoryServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryServiceClient) GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*StateMessage, error) {
	return invoke[StateMessage](ctx, c.cc, DirectoryService_GetState_FullMethodName, in, opts)
}

func (c *directoryServiceClient) FetchAll(ctx context.Context, in *FetchAllRequest, opts ...grpc.CallOption) (*StateMessage, error) {
	return invoke[StateMessage](ctx, c.cc, DirectoryService_FetchAll_FullMethodName, in, opts)
}

func (c *directoryServiceClient) AddLocal(ctx context.Context, in *AddLocalRequest, opts ...grpc.CallOption) (*UserMessage, error) {
	return invoke[UserMessage](ctx, c.cc, DirectoryService_AddLocal_FullMethodName, in, opts)
}

func (c *directoryServiceClient) Update(ctx context.Context, in *UpdateRequest, opts ...grpc.CallOption) (*UpdateResponse, error) {
	return invoke[UpdateResponse](ctx, c.cc, DirectoryService_Update_FullMethodName, in, opts)
}

func (c *directoryServiceClient) Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*RemoveResponse, error) {
	return invoke[RemoveResponse](ctx, c.cc, DirectoryService_Remove_FullMethodName, in, opts)
}

func (c *directoryServiceClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserMessage, error) {
	return invoke[UserMessage](ctx, c.cc, DirectoryService_GetUser_FullMethodName, in, opts)
}

// DirectoryServiceServer is the server API for DirectoryService.
type DirectoryServiceServer interface {
	GetState(context.Context, *emptypb.Empty) (*StateMessage, error)
	FetchAll(context.Context, *FetchAllRequest) (*StateMessage, error)
	AddLocal(context.Context, *AddLocalRequest) (*UserMessage, error)
	Update(context.Context, *UpdateRequest) (*UpdateResponse, error)
	Remove(context.Context, *RemoveRequest) (*RemoveResponse, error)
	GetUser(context.Context, *GetUserRequest) (*UserMessage, error)
}

// UnimplementedDirectoryServiceServer can be embedded to get Unimplemented
// answers for methods a server does not provide.
type UnimplementedDirectoryServiceServer struct{}

func (UnimplementedDirectoryServiceServer) GetState(context.Context, *emptypb.Empty) (*StateMessage, error) {
	return nil, status.Error(codes.Unimplemented, "method GetState not implemented")
}
func (UnimplementedDirectoryServiceServer) FetchAll(context.Context, *FetchAllRequest) (*StateMessage, error) {
	return nil, status.Error(codes.Unimplemented, "method FetchAll not implemented")
}
func (UnimplementedDirectoryServiceServer) AddLocal(context.Context, *AddLocalRequest) (*UserMessage, error) {
	return nil, status.Error(codes.Unimplemented, "method AddLocal not implemented")
}
func (UnimplementedDirectoryServiceServer) Update(context.Context, *UpdateRequest) (*UpdateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}
func (UnimplementedDirectoryServiceServer) Remove(context.Context, *RemoveRequest) (*RemoveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Remove not implemented")
}
func (UnimplementedDirectoryServiceServer) GetUser(context.Context, *GetUserRequest) (*UserMessage, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}

func RegisterDirectoryServiceServer(s grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	s.RegisterService(&DirectoryService_ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](method string, call func(DirectoryServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DirectoryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DirectoryServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DirectoryService_ServiceDesc is the grpc.ServiceDesc for DirectoryService.
var DirectoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetState",
			Handler:    unaryHandler(DirectoryService_GetState_FullMethodName, DirectoryServiceServer.GetState),
		},
		{
			MethodName: "FetchAll",
			Handler:    unaryHandler(DirectoryService_FetchAll_FullMethodName, DirectoryServiceServer.FetchAll),
		},
		{
			MethodName: "AddLocal",
			Handler:    unaryHandler(DirectoryService_AddLocal_FullMethodName, DirectoryServiceServer.AddLocal),
		},
		{
			MethodName: "Update",
			Handler:    unaryHandler(DirectoryService_Update_FullMethodName, DirectoryServiceServer.Update),
		},
		{
			MethodName: "Remove",
			Handler:    unaryHandler(DirectoryService_Remove_FullMethodName, DirectoryServiceServer.Remove),
		},
		{
			MethodName: "GetUser",
			Handler:    unaryHandler(DirectoryService_GetUser_FullMethodName, DirectoryServiceServer.GetUser),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userdir/directory",
}
