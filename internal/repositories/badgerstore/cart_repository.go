// Package badgerstore persists the cart sequence in an embedded Badger
// key-value store so it survives process restarts.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/repositories"
)

// DefaultCartKey is the fixed key the serialized cart lives under.
const DefaultCartKey = "cart"

// Options configures the store location and behaviour.
type Options struct {
	// Dir is the on-disk location of the store. Ignored when InMemory is set.
	Dir string
	// InMemory keeps all data in process memory; used by tests and the
	// ephemeral runtime mode.
	InMemory bool
	// CartKey overrides DefaultCartKey when non-empty.
	CartKey string
	// Logger receives recovery warnings. Defaults to a no-op logger.
	Logger *zap.Logger
}

// CartRepository implements repositories.CartRepository on top of Badger.
type CartRepository struct {
	db     *badger.DB
	key    []byte
	logger *zap.Logger
}

var _ repositories.CartRepository = (*CartRepository)(nil)

// Open creates or opens the store described by opts.
func Open(opts Options) (*CartRepository, error) {
	badgerOpts := badger.DefaultOptions(opts.Dir).
		WithInMemory(opts.InMemory).
		WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open %q: %w", opts.Dir, err)
	}

	key := opts.CartKey
	if key == "" {
		key = DefaultCartKey
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CartRepository{db: db, key: []byte(key), logger: logger}, nil
}

// Load reads the persisted sequence. A missing key yields an empty cart; a
// payload that no longer parses is discarded with a warning, never an error.
func (r *CartRepository) Load(ctx context.Context) ([]domain.CartEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(r.key)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []domain.CartEntry{}, nil
	}
	if err != nil {
		return nil, unavailable{fmt.Errorf("badgerstore: load cart: %w", err)}
	}

	var entries []domain.CartEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		r.logger.Warn("discarding unparseable persisted cart", zap.Error(err))
		return []domain.CartEntry{}, nil
	}
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	return entries, nil
}

// Save writes the full sequence, replacing the previous payload.
func (r *CartRepository) Save(ctx context.Context, entries []domain.CartEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.CartEntry{}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("badgerstore: encode cart: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(r.key, raw)
	})
	if err != nil {
		return unavailable{fmt.Errorf("badgerstore: save cart: %w", err)}
	}
	return nil
}

// Close releases the underlying store.
func (r *CartRepository) Close() error {
	return r.db.Close()
}

type unavailable struct {
	err error
}

func (u unavailable) Error() string       { return u.err.Error() }
func (u unavailable) Unwrap() error       { return u.err }
func (u unavailable) IsNotFound() bool    { return false }
func (u unavailable) IsUnavailable() bool { return true }
