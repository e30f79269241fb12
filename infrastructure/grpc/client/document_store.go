package client

import (
	"context"
	"dm-lab/contract"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"dm-lab/infrastructure/grpc/api"
	"dm-lab/runtime/workers"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/protobuf/types/known/structpb"
)

// DocumentStore is the remote document store. Live queries are server
// streams re-opened by a supervisor when the connection drops.
type DocumentStore struct {
	api        api.DocumentStoreClient
	callOpts   []grpc.CallOption
	log        *slog.Logger
	supervisor *workers.Supervisor
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewDocumentStore(cc grpc.ClientConnInterface, creds credentials.PerRPCCredentials, log *slog.Logger, reconnectInterval time.Duration) *DocumentStore {
	ctx, cancel := context.WithCancel(context.Background())
	var callOpts []grpc.CallOption
	if creds != nil {
		callOpts = append(callOpts, grpc.PerRPCCredentials(creds))
	}
	return &DocumentStore{
		api:        api.NewDocumentStoreClient(cc),
		callOpts:   callOpts,
		log:        log,
		supervisor: workers.NewSupervisor(log, reconnectInterval),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Close ends every live query.
func (s *DocumentStore) Close() error {
	s.cancel()
	s.supervisor.Wait()
	return nil
}

func (s *DocumentStore) Add(ctx context.Context, collection string, fields document.Fields) (string, error) {
	payload, err := document.ToStruct(fields)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	res, err := s.api.Add(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
		"collection": structpb.NewStringValue(collection),
		"fields":     structpb.NewStructValue(payload),
	}}, s.callOpts...)
	if err != nil {
		return "", errors.FromGRPCError(err)
	}
	return res.GetFields()["id"].GetStringValue(), nil
}

func (s *DocumentStore) Create(ctx context.Context, collection, id string, fields document.Fields) error {
	payload, err := document.ToStruct(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	_, err = s.api.Create(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
		"collection": structpb.NewStringValue(collection),
		"id":         structpb.NewStringValue(id),
		"fields":     structpb.NewStructValue(payload),
	}}, s.callOpts...)
	return errors.FromGRPCError(err)
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (document.Document, error) {
	res, err := s.api.Get(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
		"collection": structpb.NewStringValue(collection),
		"id":         structpb.NewStringValue(id),
	}}, s.callOpts...)
	if err != nil {
		return document.Document{}, errors.FromGRPCError(err)
	}
	return document.DecodeDocument(res)
}

func (s *DocumentStore) Query(ctx context.Context, q document.Query) ([]document.Document, error) {
	req, err := document.EncodeQuery(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	res, err := s.api.Query(ctx, req, s.callOpts...)
	if err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return document.DecodeDocuments(res)
}

func (s *DocumentStore) Subscribe(_ context.Context, q document.Query, onSnapshot document.SnapshotFunc) (contract.Subscription, error) {
	if onSnapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot callback", errors.ErrInvalidInput)
	}
	req, err := document.EncodeQuery(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	if s.ctx.Err() != nil {
		return nil, fmt.Errorf("%w: store closed", errors.ErrNetwork)
	}

	subCtx, cancel := context.WithCancel(s.ctx)
	w := &streamWatcher{api: s.api, callOpts: s.callOpts, log: s.log, req: req, onSnapshot: onSnapshot, cancel: cancel}
	s.supervisor.Start(subCtx, w)

	var once sync.Once
	return unsubscribeFunc(func() {
		once.Do(func() {
			w.stopped.Store(true)
			cancel()
		})
	}), nil
}

type unsubscribeFunc func()

func (f unsubscribeFunc) Unsubscribe() { f() }

// streamWatcher owns one Watch stream. Each restart opens a fresh stream,
// whose first message is the current snapshot.
type streamWatcher struct {
	api        api.DocumentStoreClient
	callOpts   []grpc.CallOption
	log        *slog.Logger
	req        *structpb.Struct
	onSnapshot document.SnapshotFunc
	cancel     context.CancelFunc
	stopped    atomic.Bool
}

func (w *streamWatcher) Run(ctx context.Context) error {
	stream, err := w.api.Watch(ctx, w.req, w.callOpts...)
	if err != nil {
		return w.fail(ctx, err)
	}
	for {
		msg, err := stream.Recv()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return fmt.Errorf("%w: watch stream ended", errors.ErrNetwork)
			}
			return w.fail(ctx, err)
		}
		docs, err := document.DecodeDocuments(msg)
		if err != nil {
			w.log.Warn("Dropping undecodable snapshot", "error", err)
			continue
		}
		if w.stopped.Load() || ctx.Err() != nil {
			return nil
		}
		w.onSnapshot(docs)
	}
}

// fail decides between a restart and giving up. Refusals from the server
// will not change by retrying, so the watcher stops for good.
func (w *streamWatcher) fail(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	err = errors.FromGRPCError(err)
	if stderrors.Is(err, errors.ErrPermissionDenied) || stderrors.Is(err, errors.ErrInvalidToken) ||
		stderrors.Is(err, errors.ErrInvalidInput) {
		w.log.Error("Live query refused", "error", err)
		w.cancel()
		return nil
	}
	return err
}
