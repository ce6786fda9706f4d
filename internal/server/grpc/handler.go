package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	"github.com/dmitrijs2005/userdir/internal/common"
	pb "github.com/dmitrijs2005/userdir/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func toStateMessage(st store.State) *pb.StateMessage {
	msg := &pb.StateMessage{
		Users:   st.Users,
		Loading: st.Loading,
		Error:   st.Error,
	}
	if !st.LastFetched.IsZero() {
		msg.LastFetched = st.LastFetched.UnixMilli()
	}
	return msg
}

func (s *GRPCServer) GetState(ctx context.Context, _ *emptypb.Empty) (*pb.StateMessage, error) {
	return toStateMessage(s.store.State()), nil
}

// FetchAll blocks until the fetch finishes and answers with the resulting
// state. Fetch failures are reported in StateMessage.Error, not as a status.
func (s *GRPCServer) FetchAll(ctx context.Context, req *pb.FetchAllRequest) (*pb.StateMessage, error) {
	s.store.FetchAll(ctx, req.Force)
	return toStateMessage(s.store.State()), nil
}

func (s *GRPCServer) AddLocal(ctx context.Context, req *pb.AddLocalRequest) (*pb.UserMessage, error) {
	u, err := s.store.AddLocal(models.Draft{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Website: req.Website,
		Address: req.Address,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.UserMessage{User: u}, nil
}

func (s *GRPCServer) Update(ctx context.Context, req *pb.UpdateRequest) (*pb.UpdateResponse, error) {
	return &pb.UpdateResponse{Found: s.store.Update(req.User)}, nil
}

func (s *GRPCServer) Remove(ctx context.Context, req *pb.RemoveRequest) (*pb.RemoveResponse, error) {
	return &pb.RemoveResponse{Found: s.store.Remove(req.ID)}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.UserMessage, error) {
	d := s.store.Detail(ctx, req.ID)
	if d.User == nil {
		if d.Err == nil {
			return nil, status.Error(codes.NotFound, "user not found")
		}
		return nil, toStatus(d.Err)
	}
	return &pb.UserMessage{User: *d.User}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, client.Describe(err))
	case errors.Is(err, client.ErrTimeout):
		return status.Error(codes.DeadlineExceeded, client.Describe(err))
	case errors.Is(err, client.ErrNetwork):
		return status.Error(codes.Unavailable, client.Describe(err))
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
