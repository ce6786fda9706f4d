package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
	pb "github.com/dmitrijs2005/userdir/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// BridgeClient talks to a userdir gRPC bridge started with "userdir serve".
type BridgeClient struct {
	endpointURL string
	accessToken string
	conn        *grpc.ClientConn
	client      pb.DirectoryServiceClient
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

func (s *BridgeClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewBridgeClient prepares a client for endpointURL. accessToken may be
// empty when the bridge runs without a secret. Extra dial options are
// appended after the defaults (insecure transport, token interceptor).
func NewBridgeClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*BridgeClient, error) {
	c := &BridgeClient{endpointURL: endpointURL, accessToken: accessToken}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewDirectoryServiceClient(conn)
	return c, nil
}

func (s *BridgeClient) Close() error {
	return s.conn.Close()
}

func (s *BridgeClient) State(ctx context.Context) (*pb.StateMessage, error) {
	resp, err := s.client.GetState(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *BridgeClient) FetchAll(ctx context.Context, force bool) (*pb.StateMessage, error) {
	resp, err := s.client.FetchAll(ctx, &pb.FetchAllRequest{Force: force})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *BridgeClient) AddLocal(ctx context.Context, d models.Draft) (models.User, error) {
	req := &pb.AddLocalRequest{
		Name:    d.Name,
		Email:   d.Email,
		Company: d.Company,
		Phone:   d.Phone,
		Website: d.Website,
		Address: d.Address,
	}
	resp, err := s.client.AddLocal(ctx, req)
	if err != nil {
		return models.User{}, s.mapError(err)
	}
	return resp.User, nil
}

func (s *BridgeClient) Update(ctx context.Context, u models.User) (bool, error) {
	resp, err := s.client.Update(ctx, &pb.UpdateRequest{User: u})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Found, nil
}

func (s *BridgeClient) Remove(ctx context.Context, id int64) (bool, error) {
	resp, err := s.client.Remove(ctx, &pb.RemoveRequest{ID: id})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Found, nil
}

func (s *BridgeClient) User(ctx context.Context, id int64) (*models.User, error) {
	resp, err := s.client.GetUser(ctx, &pb.GetUserRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *BridgeClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrValidation, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
