// Package memory provides an in-process CartRepository for tests and the
// no-persistence runtime mode.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/repositories"
)

// CartRepository keeps the serialized cart in memory. It stores the same JSON
// payload the durable store would, so load/save round-trips exercise the real
// encoding.
type CartRepository struct {
	mu      sync.Mutex
	raw     []byte
	saveErr error
	loadErr error
}

var _ repositories.CartRepository = (*CartRepository)(nil)

// New returns an empty repository.
func New() *CartRepository {
	return &CartRepository{}
}

// Prime seeds the stored payload, bypassing Save. Raw need not be valid JSON;
// tests use that to model a corrupt persisted cart.
func (r *CartRepository) Prime(raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = append([]byte(nil), raw...)
}

// FailNext makes subsequent Save and Load calls return the supplied errors.
func (r *CartRepository) FailNext(saveErr, loadErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErr = saveErr
	r.loadErr = loadErr
}

// Load implements repositories.CartRepository.
func (r *CartRepository) Load(ctx context.Context) ([]domain.CartEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if len(r.raw) == 0 {
		return []domain.CartEntry{}, nil
	}
	var entries []domain.CartEntry
	if err := json.Unmarshal(r.raw, &entries); err != nil {
		return []domain.CartEntry{}, nil
	}
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	return entries, nil
}

// Save implements repositories.CartRepository.
func (r *CartRepository) Save(ctx context.Context, entries []domain.CartEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	r.raw = raw
	return nil
}

// Close implements repositories.CartRepository.
func (r *CartRepository) Close() error { return nil }
