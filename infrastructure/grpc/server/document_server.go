package server

import (
	"context"
	"dm-lab/auth"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"dm-lab/infrastructure/grpc/api"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// DocumentServer exposes a document store to authenticated clients,
// enforcing the access rules of each collection.
type DocumentServer struct {
	store    contract.IDocumentStore
	log      *slog.Logger
	done     chan struct{}
	stopOnce sync.Once
}

func NewDocumentServer(store contract.IDocumentStore, log *slog.Logger) *DocumentServer {
	return &DocumentServer{store: store, log: log, done: make(chan struct{})}
}

// Stop ends every open Watch stream with Unavailable so clients reconnect.
// Call it before GracefulStop, which waits for open streams.
func (s *DocumentServer) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *DocumentServer) Add(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	collection := req.GetFields()["collection"].GetStringValue()
	fields := document.FromStruct(req.GetFields()["fields"].GetStructValue())
	if err := canAdd(caller, collection, fields); err != nil {
		return nil, errors.MapToGRPCError(err)
	}

	id, err := s.store.Add(ctx, collection, fields)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id": structpb.NewStringValue(id),
	}}, nil
}

func (s *DocumentServer) Create(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	collection := req.GetFields()["collection"].GetStringValue()
	id := req.GetFields()["id"].GetStringValue()
	fields := document.FromStruct(req.GetFields()["fields"].GetStructValue())
	if err := canCreate(caller, collection, id, fields); err != nil {
		return nil, errors.MapToGRPCError(err)
	}

	if err := s.store.Create(ctx, collection, id, fields); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *DocumentServer) Get(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	collection := req.GetFields()["collection"].GetStringValue()
	doc, err := s.store.Get(ctx, collection, req.GetFields()["id"].GetStringValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if err := canRead(caller, collection, doc); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	out, err := document.EncodeDocument(doc)
	return out, errors.MapToGRPCError(err)
}

func (s *DocumentServer) Query(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, q, err := s.authorizedQuery(ctx, req)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	s.log.Debug("Query served", "uid", caller.ID, "collection", q.Collection, "documents", len(docs))
	out, err := document.EncodeDocuments(docs)
	return out, errors.MapToGRPCError(err)
}

// Watch keeps a live query open for the lifetime of the stream. Snapshots
// are latest-wins: a slow client skips intermediate ones, never the last.
func (s *DocumentServer) Watch(req *structpb.Struct, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()
	caller, q, err := s.authorizedQuery(ctx, req)
	if err != nil {
		return err
	}

	latest := make(chan []document.Document, 1)
	sub, err := s.store.Subscribe(ctx, q, func(docs []document.Document) {
		select {
		case <-latest:
		default:
		}
		latest <- docs
	})
	if err != nil {
		return errors.MapToGRPCError(err)
	}
	defer sub.Unsubscribe()
	s.log.Debug("Watch opened", "uid", caller.ID, "collection", q.Collection)

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Watch closed", "uid", caller.ID, "collection", q.Collection)
			return nil
		case <-s.done:
			s.log.Debug("Watch closed by shutdown", "uid", caller.ID, "collection", q.Collection)
			return status.Error(codes.Unavailable, "server shutting down")
		case docs := <-latest:
			out, err := document.EncodeDocuments(docs)
			if err != nil {
				return errors.MapToGRPCError(err)
			}
			if err := stream.Send(out); err != nil {
				s.log.Warn("Failed to push snapshot to stream", "uid", caller.ID, "error", err)
				return err
			}
		}
	}
}

func (s *DocumentServer) authorizedQuery(ctx context.Context, req *structpb.Struct) (domain.Identity, document.Query, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return domain.Identity{}, document.Query{}, errors.MapToGRPCError(err)
	}
	q, err := document.DecodeQuery(req)
	if err != nil {
		return domain.Identity{}, document.Query{}, errors.MapToGRPCError(fmt.Errorf("%w: %v", errors.ErrInvalidInput, err))
	}
	if err := canQuery(caller, q); err != nil {
		return domain.Identity{}, document.Query{}, errors.MapToGRPCError(err)
	}
	return caller, q, nil
}

func callerFrom(ctx context.Context) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok || identity.ID == "" {
		return domain.Identity{}, errors.ErrNotAuthenticated
	}
	return identity, nil
}

var _ api.DocumentStoreServer = (*DocumentServer)(nil)
