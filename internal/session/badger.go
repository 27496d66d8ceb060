package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/yuanzicheng/dev-tools/internal/view"
)

// BadgerDB holds a connection to a Badger backend.
type BadgerDB struct {
	InMemory bool
	TTL      time.Duration
	DB       *badger.DB
}

// BadgerOptions configures InitializeBadgerDB.
type BadgerOptions struct {
	Dir      string        // Path to store data in; ignored when InMemory
	InMemory bool          // Keep all data in memory
	TTL      time.Duration // Lifetime of each entry; zero keeps entries forever
}

const prefixView = "view"

func makeSessionPrefix(sessionID string) []byte {
	return []byte(fmt.Sprintf("%s_%s_", prefixView, sessionID))
}

func makeViewKey(sessionID, tool string) []byte {
	return append(makeSessionPrefix(sessionID), tool...)
}

// InitializeBadgerDB creates a new store with a Badger backend.
func InitializeBadgerDB(opts BadgerOptions) (*BadgerDB, error) {
	path := opts.Dir
	if opts.InMemory {
		path = ""
	}
	db, err := badger.Open(
		badger.DefaultOptions(path).
			WithInMemory(opts.InMemory).
			WithLoggingLevel(badger.WARNING),
	)
	if err != nil {
		return nil, err
	}

	return &BadgerDB{DB: db, InMemory: opts.InMemory, TTL: opts.TTL}, nil
}

// Close handles closing all connections to the database.
func (db *BadgerDB) Close() error {
	return db.DB.Close()
}

// Reset drops all data. Only used in tests.
func (db *BadgerDB) Reset() error {
	return db.DB.DropAll()
}

// GetView returns the saved view for the session.
func (db *BadgerDB) GetView(ctx context.Context, sessionID, tool string) (s *view.Snapshot, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := makeViewKey(sessionID, tool)
	err = db.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(b []byte) error {
			return json.Unmarshal(b, &s)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return
}

// SaveView stores the view if nobody else saved it since it was loaded.
func (db *BadgerDB) SaveView(ctx context.Context, sessionID, tool string, s view.Snapshot) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	key := makeViewKey(sessionID, tool)
	err := db.DB.Update(func(txn *badger.Txn) error {
		var current uint64
		item, err := txn.Get(key)
		switch {
		case err == nil:
			err = item.Value(func(b []byte) error {
				var stored view.Snapshot
				if err := json.Unmarshal(b, &stored); err != nil {
					return err
				}
				current = stored.Revision
				return nil
			})
			if err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
		default:
			return err
		}
		if current != s.Revision {
			return ErrStale
		}

		s.Revision++
		b, err := json.Marshal(s)
		if err != nil {
			return err
		}
		entry := badger.NewEntry(key, b)
		if db.TTL > 0 {
			entry = entry.WithTTL(db.TTL)
		}
		return txn.SetEntry(entry)
	})
	if errors.Is(err, ErrStale) || errors.Is(err, badger.ErrConflict) {
		return 0, ErrStale
	}
	if err != nil {
		return 0, errors.Wrap(err, "saving view")
	}
	return s.Revision, nil
}

// DeleteSession deletes every view saved for the session.
func (db *BadgerDB) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := makeSessionPrefix(sessionID)
	return db.DB.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
