package server

import (
	"dm-lab/auth"
	"dm-lab/infrastructure/grpc/api"

	"google.golang.org/grpc"
)

// NewGRPCServer registers both services behind the JWT interceptors.
func NewGRPCServer(interceptor *auth.Interceptor, documents api.DocumentStoreServer, identity api.IdentityServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts,
		grpc.UnaryInterceptor(interceptor.Unary()),
		grpc.StreamInterceptor(interceptor.Stream()),
	)
	s := grpc.NewServer(opts...)
	api.RegisterDocumentStoreServer(s, documents)
	api.RegisterIdentityServer(s, identity)
	return s
}
