package natskv

import (
	"context"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	req := require.New(t)

	ns, err := StartEmbedded(t.TempDir())
	req.NoError(err)
	t.Cleanup(ns.Shutdown)

	conn, js, err := Connect(ns.ClientURL())
	req.NoError(err)
	t.Cleanup(conn.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := NewDocumentStore(ctx, js, DefaultBucket, slog.Default())
	req.NoError(err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDocumentStore_CreateGetQuery(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestStore(t)

	// Given two profiles and a message
	req.NoError(store.Create(ctx, "users", "U1", document.Fields{"uid": "U1", "name": "Ann"}))
	req.NoError(store.Create(ctx, "users", "U2", document.Fields{"uid": "U2", "name": "Bob"}))
	_, err := store.Add(ctx, "chats", document.Fields{"users": []string{"U1", "U2"}})
	req.NoError(err)

	// When reading one back
	doc, err := store.Get(ctx, "users", "U1")
	req.NoError(err)
	req.Equal("Ann", doc.Fields["name"])
	req.NotZero(doc.Seq)

	// Then queries only see their collection
	docs, err := store.Query(ctx, document.NewQuery("users").Where("uid", document.OpNotEqual, "U1"))
	req.NoError(err)
	req.Len(docs, 1)
	req.Equal("U2", docs[0].ID)

	// And creating an existing id fails
	req.ErrorIs(store.Create(ctx, "users", "U1", document.Fields{}), errors.ErrAlreadyExists)

	_, err = store.Get(ctx, "users", "U9")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestDocumentStore_Query_EmptyCollection(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	docs, err := store.Query(context.Background(), document.NewQuery("users"))

	req.NoError(err)
	req.Empty(docs)
}

func TestDocumentStore_RejectsKeysOutsideOneToken(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	req.ErrorIs(store.Create(context.Background(), "users", "a.b", document.Fields{}), errors.ErrInvalidInput)
	req.ErrorIs(store.Create(context.Background(), "users", "", document.Fields{}), errors.ErrInvalidInput)
	_, err := store.Query(context.Background(), document.NewQuery("us*rs"))
	req.ErrorIs(err, errors.ErrInvalidInput)
}

func TestDocumentStore_Subscribe(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newTestStore(t)

	var mu sync.Mutex
	var last []document.Document
	count := 0
	onSnapshot := func(docs []document.Document) {
		mu.Lock()
		defer mu.Unlock()
		last = docs
		count++
	}
	snapshot := func() ([]document.Document, int) {
		mu.Lock()
		defer mu.Unlock()
		return last, count
	}

	// Given an existing message
	_, err := store.Add(ctx, "chats", document.Fields{"users": []string{"U1", "U2"}, "text": "first"})
	req.NoError(err)

	// When subscribing to U1's messages
	sub, err := store.Subscribe(ctx, document.NewQuery("chats").Where("users", document.OpArrayContains, "U1"), onSnapshot)
	req.NoError(err)

	// Then the initial snapshot holds it
	req.Eventually(func() bool {
		docs, _ := snapshot()
		return len(docs) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// When another matching message arrives
	_, err = store.Add(ctx, "chats", document.Fields{"users": []string{"U2", "U1"}, "text": "second"})
	req.NoError(err)

	// Then the next snapshot is complete and ordered
	req.Eventually(func() bool {
		docs, _ := snapshot()
		return len(docs) == 2 && docs[0].Fields["text"] == "first" && docs[1].Fields["text"] == "second"
	}, 2*time.Second, 10*time.Millisecond)

	// When unsubscribed
	sub.Unsubscribe()
	sub.Unsubscribe()
	_, before := snapshot()
	_, err = store.Add(ctx, "chats", document.Fields{"users": []string{"U1", "U3"}})
	req.NoError(err)

	// Then nothing more is delivered
	time.Sleep(100 * time.Millisecond)
	_, after := snapshot()
	req.Equal(before, after)
}
