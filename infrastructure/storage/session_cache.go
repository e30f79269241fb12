package storage

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

const cachePrefix = "cache:"

// SessionCache is the client-local key/value cache that survives restarts.
type SessionCache struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSessionCache(db *badger.DB, log *slog.Logger) *SessionCache {
	return &SessionCache{db: db, log: log}
}

// Get returns nil when the key was never set or has been removed.
func (c *SessionCache) Get(ctx context.Context, key string) (*string, error) {
	var value *string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cachePrefix + key))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v := string(val)
			value = &v
			return nil
		})
	})
	return value, err
}

func (c *SessionCache) Set(ctx context.Context, key, value string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cachePrefix+key), []byte(value))
	})
}

// Remove deletes a key. Removing an absent key is not an error.
func (c *SessionCache) Remove(ctx context.Context, key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(cachePrefix + key))
	})
}
