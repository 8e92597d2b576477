package client

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// responseCache keeps GET bodies in an in-memory badger store for a short TTL.
// Every value is prefixed with its expiry so lookups honour the injected clock.
type responseCache struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

func newResponseCache(ttl time.Duration) (*responseCache, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithMemTableSize(4 << 20).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open response cache: %w", err)
	}
	return &responseCache{db: db, ttl: ttl, now: time.Now}, nil
}

func (c *responseCache) get(key string) ([]byte, bool) {
	var body []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) < 8 {
				return badger.ErrKeyNotFound
			}
			expires := time.Unix(0, int64(binary.BigEndian.Uint64(val[:8])))
			if !c.now().Before(expires) {
				return badger.ErrKeyNotFound
			}
			body = append([]byte{}, val[8:]...)
			return nil
		})
	})
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *responseCache) set(key string, body []byte) error {
	val := make([]byte, 8+len(body))
	binary.BigEndian.PutUint64(val[:8], uint64(c.now().Add(c.ttl).UnixNano()))
	copy(val[8:], body)
	return c.db.Update(func(txn *badger.Txn) error {
		// badger TTLs have second granularity; round up so the store never drops an entry early
		return txn.SetEntry(badger.NewEntry([]byte(key), val).WithTTL(c.ttl + time.Second))
	})
}

// clear drops every cached response
func (c *responseCache) clear() error {
	if err := c.db.DropAll(); err != nil && !errors.Is(err, badger.ErrBlockedWrites) {
		return err
	}
	return nil
}

func (c *responseCache) close() error {
	return c.db.Close()
}
