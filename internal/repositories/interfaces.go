package repositories

import (
	"context"

	domain "github.com/maison-field/storefront/internal/domain"
)

// CartRepository persists the serialized cart sequence under a single fixed
// key. Load returns an empty slice when nothing was stored; a corrupt payload
// is recovered as an empty cart, never surfaced to the caller.
type CartRepository interface {
	Load(ctx context.Context) ([]domain.CartEntry, error)
	Save(ctx context.Context, entries []domain.CartEntry) error
	Close() error
}

// RepositoryError wraps low-level persistence failures with categorisation
// used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsUnavailable() bool
}
