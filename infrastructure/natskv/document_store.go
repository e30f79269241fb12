// Package natskv implements the document store on top of a NATS JetStream
// key/value bucket. Keys are {collection}.{id} and a document's sequence is
// the revision of its latest entry.
package natskv

import (
	"cmp"
	"context"
	"dm-lab/contract"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"dm-lab/runtime/workers"
	stderrors "errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

const DefaultBucket = "DMLAB_DOCUMENTS"

var tokenPattern = regexp.MustCompile(`^[-_=a-zA-Z0-9]+$`)

type DocumentStore struct {
	kv         jetstream.KeyValue
	log        *slog.Logger
	supervisor *workers.Supervisor
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewDocumentStore opens the bucket, creating it when missing.
func NewDocumentStore(ctx context.Context, js jetstream.JetStream, bucket string, log *slog.Logger) (*DocumentStore, error) {
	kv, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create %s bucket: %w", bucket, err)
	}
	storeCtx, cancel := context.WithCancel(context.Background())
	return &DocumentStore{
		kv:         kv,
		log:        log,
		supervisor: workers.NewSupervisor(log, time.Second),
		ctx:        storeCtx,
		cancel:     cancel,
	}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("dm-lab %s documents", strings.ToLower(name)),
		History:     1,
	})
}

// Close stops every live query. The connection belongs to the caller.
func (s *DocumentStore) Close() error {
	s.cancel()
	s.supervisor.Wait()
	return nil
}

func (s *DocumentStore) Add(ctx context.Context, collection string, fields document.Fields) (string, error) {
	id := uuid.NewString()
	if err := s.create(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *DocumentStore) Create(ctx context.Context, collection, id string, fields document.Fields) error {
	return s.create(ctx, collection, id, fields)
}

func (s *DocumentStore) create(ctx context.Context, collection, id string, fields document.Fields) error {
	key, err := documentKey(collection, id)
	if err != nil {
		return err
	}
	canonical, err := document.CanonicalFields(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	data, err := document.Marshal(document.Document{ID: id, Fields: canonical})
	if err != nil {
		return err
	}
	if _, err := s.kv.Create(ctx, key, data); err != nil {
		if stderrors.Is(err, jetstream.ErrKeyExists) {
			return errors.ErrAlreadyExists
		}
		return fmt.Errorf("%w: %v", errors.ErrNetwork, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (document.Document, error) {
	key, err := documentKey(collection, id)
	if err != nil {
		return document.Document{}, err
	}
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return document.Document{}, errors.ErrNotFound
		}
		return document.Document{}, fmt.Errorf("%w: %v", errors.ErrNetwork, err)
	}
	return decodeEntry(entry)
}

// Query replays the current values of the collection and keeps the matching
// documents, in revision order.
func (s *DocumentStore) Query(ctx context.Context, q document.Query) ([]document.Document, error) {
	if err := validToken(q.Collection); err != nil {
		return nil, err
	}
	watcher, err := s.kv.Watch(ctx, q.Collection+".*", jetstream.IgnoreDeletes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrNetwork, err)
	}
	defer func() { _ = watcher.Stop() }()

	docs := []document.Document{}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case entry := <-watcher.Updates():
			// nil marks the end of the initial values
			if entry == nil {
				return docs, nil
			}
			doc, err := decodeEntry(entry)
			if err != nil {
				s.log.Warn("Skipping undecodable document", "key", entry.Key(), "error", err)
				continue
			}
			if q.Matches(doc) {
				docs = append(docs, doc)
			}
		}
	}
}

// Subscribe keeps a KV watch open on the collection and delivers the full
// matching set after the initial replay and after each later update.
func (s *DocumentStore) Subscribe(_ context.Context, q document.Query, onSnapshot document.SnapshotFunc) (contract.Subscription, error) {
	if err := validToken(q.Collection); err != nil {
		return nil, err
	}
	if onSnapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot callback", errors.ErrInvalidInput)
	}
	if s.ctx.Err() != nil {
		return nil, fmt.Errorf("%w: store closed", errors.ErrNetwork)
	}

	subCtx, cancel := context.WithCancel(s.ctx)
	w := &collectionWatcher{kv: s.kv, log: s.log, query: q, onSnapshot: onSnapshot}
	s.supervisor.Start(subCtx, w)

	var once sync.Once
	return subscriptionFunc(func() {
		once.Do(func() {
			w.stopped.Store(true)
			cancel()
		})
	}), nil
}

// collectionWatcher mirrors a collection locally from a KV watch.
// A restart replays the bucket from scratch.
type collectionWatcher struct {
	kv         jetstream.KeyValue
	log        *slog.Logger
	query      document.Query
	onSnapshot document.SnapshotFunc
	stopped    atomic.Bool
}

func (w *collectionWatcher) Run(ctx context.Context) error {
	watcher, err := w.kv.Watch(ctx, w.query.Collection+".*")
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.query.Collection, err)
	}
	defer func() { _ = watcher.Stop() }()

	docs := make(map[string]document.Document)
	replayed := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case entry, ok := <-watcher.Updates():
			if !ok {
				return fmt.Errorf("watch %s closed", w.query.Collection)
			}
			if entry == nil {
				replayed = true
				w.deliver(docs)
				continue
			}
			if entry.Operation() != jetstream.KeyValuePut {
				delete(docs, entry.Key())
			} else if doc, err := decodeEntry(entry); err != nil {
				w.log.Warn("Skipping undecodable document", "key", entry.Key(), "error", err)
				continue
			} else {
				docs[entry.Key()] = doc
			}
			if replayed {
				w.deliver(docs)
			}
		}
	}
}

func (w *collectionWatcher) deliver(all map[string]document.Document) {
	if w.stopped.Load() {
		return
	}
	docs := []document.Document{}
	for _, doc := range all {
		if w.query.Matches(doc) {
			docs = append(docs, doc)
		}
	}
	slices.SortFunc(docs, func(a, b document.Document) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	w.onSnapshot(docs)
}

type subscriptionFunc func()

func (f subscriptionFunc) Unsubscribe() { f() }

func decodeEntry(entry jetstream.KeyValueEntry) (document.Document, error) {
	doc, err := document.Unmarshal(entry.Value())
	if err != nil {
		return document.Document{}, err
	}
	doc.Seq = entry.Revision()
	return doc, nil
}

func documentKey(collection, id string) (string, error) {
	if err := validToken(collection); err != nil {
		return "", err
	}
	if err := validToken(id); err != nil {
		return "", err
	}
	return collection + "." + id, nil
}

// validToken keeps collection names and ids within a single KV key token.
func validToken(token string) error {
	if !tokenPattern.MatchString(token) {
		return fmt.Errorf("%w: invalid key token %q", errors.ErrInvalidInput, token)
	}
	return nil
}

func isNotFound(err error) bool {
	return stderrors.Is(err, jetstream.ErrKeyNotFound) || stderrors.Is(err, jetstream.ErrKeyDeleted)
}
