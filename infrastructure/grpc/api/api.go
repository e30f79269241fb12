// Package api describes the dmlab.v1 gRPC services. Every message is a
// google.protobuf.Struct (or Empty), so no generated code is needed; the
// descriptors below play the role of the usual *_grpc.pb.go files.
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	DocumentStore_Add_FullMethodName    = "/dmlab.v1.DocumentStore/Add"
	DocumentStore_Create_FullMethodName = "/dmlab.v1.DocumentStore/Create"
	DocumentStore_Get_FullMethodName    = "/dmlab.v1.DocumentStore/Get"
	DocumentStore_Query_FullMethodName  = "/dmlab.v1.DocumentStore/Query"
	DocumentStore_Watch_FullMethodName  = "/dmlab.v1.DocumentStore/Watch"

	Identity_StartVerification_FullMethodName   = "/dmlab.v1.Identity/StartVerification"
	Identity_ConfirmVerification_FullMethodName = "/dmlab.v1.Identity/ConfirmVerification"
	Identity_WhoAmI_FullMethodName              = "/dmlab.v1.Identity/WhoAmI"
	Identity_SignOut_FullMethodName             = "/dmlab.v1.Identity/SignOut"
)

// PublicMethods can be called without a credential.
var PublicMethods = []string{
	Identity_StartVerification_FullMethodName,
	Identity_ConfirmVerification_FullMethodName,
}

// DocumentStoreServer is the server API for the dmlab.v1.DocumentStore service.
type DocumentStoreServer interface {
	// Add stores {"collection", "fields"} under a fresh id and returns {"id"}.
	Add(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Create stores {"collection", "id", "fields"}, failing if the id exists.
	Create(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	// Get returns the document {"collection", "id"}.
	Get(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Query returns {"documents"} matching a query.
	Query(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Watch streams a full {"documents"} snapshot after every change.
	Watch(*structpb.Struct, grpc.ServerStreamingServer[structpb.Struct]) error
}

// IdentityServer is the server API for the dmlab.v1.Identity service.
type IdentityServer interface {
	StartVerification(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmVerification(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WhoAmI(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SignOut(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

func RegisterDocumentStoreServer(s grpc.ServiceRegistrar, srv DocumentStoreServer) {
	s.RegisterService(&DocumentStore_ServiceDesc, srv)
}

func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&Identity_ServiceDesc, srv)
}

var DocumentStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "dmlab.v1.DocumentStore",
	HandlerType: (*DocumentStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Add", Handler: unaryHandler(DocumentStore_Add_FullMethodName, DocumentStoreServer.Add)},
		{MethodName: "Create", Handler: unaryHandler(DocumentStore_Create_FullMethodName, DocumentStoreServer.Create)},
		{MethodName: "Get", Handler: unaryHandler(DocumentStore_Get_FullMethodName, DocumentStoreServer.Get)},
		{MethodName: "Query", Handler: unaryHandler(DocumentStore_Query_FullMethodName, DocumentStoreServer.Query)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       documentStoreWatchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "dmlab/v1/documents.proto",
}

var Identity_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "dmlab.v1.Identity",
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartVerification", Handler: unaryHandler(Identity_StartVerification_FullMethodName, IdentityServer.StartVerification)},
		{MethodName: "ConfirmVerification", Handler: unaryHandler(Identity_ConfirmVerification_FullMethodName, IdentityServer.ConfirmVerification)},
		{MethodName: "WhoAmI", Handler: unaryHandler(Identity_WhoAmI_FullMethodName, IdentityServer.WhoAmI)},
		{MethodName: "SignOut", Handler: unaryHandler(Identity_SignOut_FullMethodName, IdentityServer.SignOut)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dmlab/v1/identity.proto",
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// the interceptor chain the same way generated handlers do.
func unaryHandler[S any, Req any, Res any, PReq interface {
	*Req
}](fullMethod string, call func(S, context.Context, PReq) (Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			res, err := call(srv.(S), ctx, in)
			return res, err
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			res, err := call(srv.(S), ctx, req.(PReq))
			return res, err
		}
		return interceptor(ctx, in, info, handler)
	}
}

func documentStoreWatchHandler(srv any, stream grpc.ServerStream) error {
	m := new(structpb.Struct)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DocumentStoreServer).Watch(m, &grpc.GenericServerStream[structpb.Struct, structpb.Struct]{ServerStream: stream})
}

// DocumentStoreClient is the client API for the dmlab.v1.DocumentStore service.
type DocumentStoreClient interface {
	Add(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Get(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Query(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Watch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type documentStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewDocumentStoreClient(cc grpc.ClientConnInterface) DocumentStoreClient {
	return &documentStoreClient{cc}
}

func (c *documentStoreClient) Add(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Add_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DocumentStore_Create_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Get(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Get_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Query(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStore_Query_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Watch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &DocumentStore_ServiceDesc.Streams[0], DocumentStore_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[structpb.Struct, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// IdentityClient is the client API for the dmlab.v1.Identity service.
type IdentityClient interface {
	StartVerification(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ConfirmVerification(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	WhoAmI(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SignOut(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type identityClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityClient(cc grpc.ClientConnInterface) IdentityClient {
	return &identityClient{cc}
}

func (c *identityClient) StartVerification(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Identity_StartVerification_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *identityClient) ConfirmVerification(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Identity_ConfirmVerification_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *identityClient) WhoAmI(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Identity_WhoAmI_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *identityClient) SignOut(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, Identity_SignOut_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
