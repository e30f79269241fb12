package storage

import (
	"cmp"
	"context"
	"dm-lab/contract"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"dm-lab/runtime"
	"dm-lab/runtime/workers"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	documentPrefix    = "doc:"
	sequenceKey       = "seq:documents"
	sequenceBandwidth = 100
)

type DocumentStoreOption func(*DocumentStore)

// WithValueLogGC runs the badger value log GC at the given interval.
func WithValueLogGC(interval time.Duration, discardRatio float64) DocumentStoreOption {
	return func(s *DocumentStore) {
		s.gcInterval = interval
		s.gcDiscardRatio = discardRatio
	}
}

func WithRestartInterval(interval time.Duration) DocumentStoreOption {
	return func(s *DocumentStore) {
		s.restartInterval = interval
	}
}

// DocumentStore keeps documents in badger under doc:{collection}:{id}.
// Live queries are re-evaluated by a supervised watcher each time the
// collection they observe is written to.
type DocumentStore struct {
	db              *badger.DB
	log             *slog.Logger
	seq             *badger.Sequence
	seqMu           sync.Mutex
	registry        *runtime.Registry
	supervisor      *workers.Supervisor
	ctx             context.Context
	cancel          context.CancelFunc
	gcInterval      time.Duration
	gcDiscardRatio  float64
	restartInterval time.Duration
}

func NewDocumentStore(db *badger.DB, log *slog.Logger, opts ...DocumentStoreOption) (*DocumentStore, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("document sequence: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &DocumentStore{
		db:       db,
		log:      log,
		seq:      seq,
		registry: runtime.NewRegistry(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.supervisor = workers.NewSupervisor(log, s.restartInterval)
	if s.gcInterval > 0 {
		s.supervisor.Start(ctx, workers.NewValueLogGCWorker(log, db, s.gcInterval, s.gcDiscardRatio))
	}
	return s, nil
}

// Stats samples the live query count and the on-disk size.
func (s *DocumentStore) Stats() map[string]any {
	lsm, vlog := s.db.Size()
	return map[string]any{
		"live_queries": s.registry.Len(),
		"lsm_bytes":    lsm,
		"vlog_bytes":   vlog,
	}
}

// Close stops every live query and releases the sequence.
// The badger database itself belongs to the caller.
func (s *DocumentStore) Close() error {
	s.cancel()
	s.supervisor.Wait()
	return s.seq.Release()
}

func (s *DocumentStore) Add(ctx context.Context, collection string, fields document.Fields) (string, error) {
	id := uuid.NewString()
	if err := s.put(ctx, collection, id, fields, false); err != nil {
		return "", err
	}
	return id, nil
}

func (s *DocumentStore) Create(ctx context.Context, collection, id string, fields document.Fields) error {
	if id == "" {
		return fmt.Errorf("%w: empty document id", errors.ErrInvalidInput)
	}
	return s.put(ctx, collection, id, fields, true)
}

func (s *DocumentStore) put(ctx context.Context, collection, id string, fields document.Fields, exclusive bool) error {
	if err := validCollection(collection); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	canonical, err := document.CanonicalFields(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	seq, err := s.nextSeq()
	if err != nil {
		return err
	}
	data, err := document.Marshal(document.Document{ID: id, Seq: seq, Fields: canonical})
	if err != nil {
		return err
	}

	key := documentKey(collection, id)
	err = s.db.Update(func(txn *badger.Txn) error {
		if exclusive {
			_, err := txn.Get(key)
			if err == nil {
				return errors.ErrAlreadyExists
			}
			if !stderrors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.registry.Notify(collection)
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (document.Document, error) {
	if err := validCollection(collection); err != nil {
		return document.Document{}, err
	}
	var doc document.Document
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(documentKey(collection, id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			doc, err = document.Unmarshal(val)
			return err
		})
	})
	return doc, err
}

// Query scans the collection and keeps the documents matching every filter,
// in insertion order.
func (s *DocumentStore) Query(ctx context.Context, q document.Query) ([]document.Document, error) {
	if err := validCollection(q.Collection); err != nil {
		return nil, err
	}
	docs := []document.Document{}
	prefix := collectionPrefix(q.Collection)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				doc, err := document.Unmarshal(val)
				if err != nil {
					s.log.Warn("Skipping undecodable document", "key", string(it.Item().Key()), "error", err)
					return nil
				}
				if q.Matches(doc) {
					docs = append(docs, doc)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(docs, func(a, b document.Document) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return docs, nil
}

// Subscribe delivers the current result of q, then a new full result after
// every write to q's collection, until Unsubscribe or Close. ctx is not
// retained: the live query belongs to the store, not to the caller's request.
func (s *DocumentStore) Subscribe(_ context.Context, q document.Query, onSnapshot document.SnapshotFunc) (contract.Subscription, error) {
	if err := validCollection(q.Collection); err != nil {
		return nil, err
	}
	if onSnapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot callback", errors.ErrInvalidInput)
	}
	if s.ctx.Err() != nil {
		return nil, fmt.Errorf("%w: store closed", errors.ErrNetwork)
	}

	id := uuid.NewString()
	subCtx, cancel := context.WithCancel(s.ctx)
	watcher := workers.NewSnapshotWatcher(s.log.With("subscription", id), func(ctx context.Context) ([]document.Document, error) {
		return s.Query(ctx, q)
	}, onSnapshot)

	s.registry.Subscribe(id, q.Collection, watcher)
	s.supervisor.Start(subCtx, watcher)

	return &subscription{stop: func() {
		watcher.Stop()
		s.registry.Unsubscribe(id, q.Collection)
		cancel()
	}}, nil
}

func (s *DocumentStore) nextSeq() (uint64, error) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("document sequence: %w", err)
	}
	return n + 1, nil
}

// subscription makes Unsubscribe idempotent.
type subscription struct {
	once sync.Once
	stop func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.stop)
}

func validCollection(collection string) error {
	if collection == "" || strings.Contains(collection, ":") {
		return fmt.Errorf("%w: invalid collection %q", errors.ErrInvalidInput, collection)
	}
	return nil
}

func collectionPrefix(collection string) []byte {
	return []byte(documentPrefix + collection + ":")
}

func documentKey(collection, id string) []byte {
	return []byte(documentPrefix + collection + ":" + id)
}
