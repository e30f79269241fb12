package storage

import (
	"context"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type snapshots struct {
	mu   sync.Mutex
	seen [][]document.Document
}

func (s *snapshots) record(docs []document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, docs)
}

func (s *snapshots) last() []document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.seen) == 0 {
		return nil
	}
	return s.seen[len(s.seen)-1]
}

func (s *snapshots) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

func TestDocumentStore_AddAndGet(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestDocumentStore(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	// Given a message written with a native timestamp
	id, err := store.Add(ctx, "chats", document.Fields{
		"senderId":  "U1",
		"text":      "hi",
		"timestamp": at,
		"users":     []string{"U1", "U2"},
	})
	req.NoError(err)
	req.NotEmpty(id)

	// When it is read back
	doc, err := store.Get(ctx, "chats", id)
	req.NoError(err)

	// Then fields are canonical
	req.Equal(id, doc.ID)
	req.NotZero(doc.Seq)
	req.Equal("hi", doc.Fields["text"])
	req.Equal([]any{"U1", "U2"}, doc.Fields["users"])
	ts, ok := doc.Fields["timestamp"].(*timestamppb.Timestamp)
	req.True(ok)
	req.True(at.Equal(ts.AsTime()))
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	req := require.New(t)
	store := newTestDocumentStore(t)

	_, err := store.Get(context.Background(), "users", "nobody")

	req.ErrorIs(err, errors.ErrNotFound)
}

func TestDocumentStore_Create_IsExclusive(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestDocumentStore(t)

	req.NoError(store.Create(ctx, "users", "U1", document.Fields{"name": "Ann"}))

	// When the same id is created again
	err := store.Create(ctx, "users", "U1", document.Fields{"name": "Other"})

	// Then the first write wins
	req.ErrorIs(err, errors.ErrAlreadyExists)
	doc, err := store.Get(ctx, "users", "U1")
	req.NoError(err)
	req.Equal("Ann", doc.Fields["name"])
}

func TestDocumentStore_RejectsInvalidInput(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestDocumentStore(t)

	_, err := store.Add(ctx, "", document.Fields{})
	req.ErrorIs(err, errors.ErrInvalidInput)

	_, err = store.Add(ctx, "a:b", document.Fields{})
	req.ErrorIs(err, errors.ErrInvalidInput)

	_, err = store.Add(ctx, "chats", document.Fields{"bad": make(chan int)})
	req.ErrorIs(err, errors.ErrInvalidInput)

	req.ErrorIs(store.Create(ctx, "users", "", document.Fields{}), errors.ErrInvalidInput)
}

func TestDocumentStore_Query_FiltersInInsertionOrder(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestDocumentStore(t)

	for _, name := range []string{"Ann", "Bob", "Cid"} {
		_, err := store.Add(ctx, "users", document.Fields{"uid": name, "name": name})
		req.NoError(err)
	}
	_, err := store.Add(ctx, "chats", document.Fields{"uid": "Ann"})
	req.NoError(err)

	docs, err := store.Query(ctx, document.NewQuery("users").Where("uid", document.OpNotEqual, "Bob"))

	req.NoError(err)
	req.Len(docs, 2)
	req.Equal("Ann", docs[0].Fields["name"])
	req.Equal("Cid", docs[1].Fields["name"])
	req.Less(docs[0].Seq, docs[1].Seq)
}

func TestDocumentStore_Subscribe_DeliversSnapshots(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestDocumentStore(t)
	rec := &snapshots{}

	// Given a live query on U1's messages
	q := document.NewQuery("chats").Where("users", document.OpArrayContains, "U1")
	sub, err := store.Subscribe(ctx, q, rec.record)
	req.NoError(err)
	defer sub.Unsubscribe()

	// Then an initial empty snapshot arrives
	req.Eventually(func() bool { return rec.count() >= 1 }, time.Second, 5*time.Millisecond)
	req.Empty(rec.last())

	// When a matching and a non matching message are written
	_, err = store.Add(ctx, "chats", document.Fields{"users": []string{"U1", "U2"}, "text": "hello"})
	req.NoError(err)
	_, err = store.Add(ctx, "chats", document.Fields{"users": []string{"U3", "U2"}, "text": "other"})
	req.NoError(err)

	// Then the latest snapshot holds the full matching set
	req.Eventually(func() bool {
		last := rec.last()
		return len(last) == 1 && last[0].Fields["text"] == "hello"
	}, time.Second, 5*time.Millisecond)
}

func TestDocumentStore_Unsubscribe_StopsDelivery(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestDocumentStore(t)
	rec := &snapshots{}

	sub, err := store.Subscribe(ctx, document.NewQuery("chats"), rec.record)
	req.NoError(err)
	req.Eventually(func() bool { return rec.count() >= 1 }, time.Second, 5*time.Millisecond)

	// When unsubscribing twice
	sub.Unsubscribe()
	sub.Unsubscribe()
	before := rec.count()

	_, err = store.Add(ctx, "chats", document.Fields{"text": "late"})
	req.NoError(err)

	// Then nothing more is delivered
	time.Sleep(50 * time.Millisecond)
	req.Equal(before, rec.count())
	req.Zero(store.registry.Len())
}

func TestDocumentStore_Close_StopsSubscriptions(t *testing.T) {
	req := require.New(t)
	store, err := NewDocumentStore(newTestDB(t), slog.Default(), WithValueLogGC(10*time.Millisecond, 0.5))
	req.NoError(err)

	_, err = store.Subscribe(context.Background(), document.NewQuery("chats"), func([]document.Document) {})
	req.NoError(err)

	req.NoError(store.Close())

	_, err = store.Subscribe(context.Background(), document.NewQuery("chats"), func([]document.Document) {})
	req.ErrorIs(err, errors.ErrNetwork)
}

func TestDocumentStore_Subscribe_RedeliversAfterCallbackPanic(t *testing.T) {
	req := require.New(t)
	store, err := NewDocumentStore(newTestDB(t), slog.Default(), WithRestartInterval(10*time.Millisecond))
	req.NoError(err)
	t.Cleanup(func() { _ = store.Close() })
	rec := &snapshots{}
	var once sync.Once

	// Given a subscriber that crashes on its first snapshot
	sub, err := store.Subscribe(context.Background(), document.NewQuery("chats"), func(docs []document.Document) {
		rec.record(docs)
		once.Do(func() { panic("boom") })
	})
	req.NoError(err)
	defer sub.Unsubscribe()

	// Then the restarted watcher delivers again without any new write
	req.Eventually(func() bool { return rec.count() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestDocumentStore_Subscribe_OutlivesCallerContext(t *testing.T) {
	req := require.New(t)
	store := newTestDocumentStore(t)
	rec := &snapshots{}

	// Given a live query opened with a context that is then cancelled
	ctx, cancel := context.WithCancel(context.Background())
	sub, err := store.Subscribe(ctx, document.NewQuery("chats"), rec.record)
	req.NoError(err)
	defer sub.Unsubscribe()
	req.Eventually(func() bool { return rec.count() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	// When a message is written
	_, err = store.Add(context.Background(), "chats", document.Fields{"text": "still here"})
	req.NoError(err)

	// Then it is still delivered, only Unsubscribe or Close end the query
	req.Eventually(func() bool { return len(rec.last()) == 1 }, time.Second, 5*time.Millisecond)
}
