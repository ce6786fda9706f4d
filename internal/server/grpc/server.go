package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	"github.com/dmitrijs2005/userdir/internal/logging"
	pb "github.com/dmitrijs2005/userdir/internal/proto"
	"google.golang.org/grpc"
)

// Directory is the part of store.Store the bridge serves.
type Directory interface {
	State() store.State
	FetchAll(ctx context.Context, force bool)
	AddLocal(d models.Draft) (models.User, error)
	Update(u models.User) bool
	Remove(id int64) bool
	Detail(ctx context.Context, id int64) store.Detail
}

type GRPCServer struct {
	pb.UnimplementedDirectoryServiceServer
	address   string
	store     Directory
	logger    logging.Logger
	jwtSecret []byte
}

// NewGRPCServer returns a server for st listening on a. An empty secretKey
// turns token checks off.
func NewGRPCServer(a string, l logging.Logger, st Directory, secretKey string) *GRPCServer {
	s := &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		store:   st,
	}
	if secretKey != "" {
		s.jwtSecret = []byte(secretKey)
	}
	return s
}

func (s *GRPCServer) newServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{s.loggingInterceptor}
	if s.jwtSecret != nil {
		interceptors = append(interceptors, s.accessTokenInterceptor)
	}
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	pb.RegisterDirectoryServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String(), "auth", s.jwtSecret != nil)

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	<-stopped
	return nil
}
