package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/repositories"
)

var (
	// ErrCartRepositoryRequired indicates the repository dependency is absent.
	ErrCartRepositoryRequired = errors.New("cart service: repository is required")
	// ErrIndexOutOfRange indicates a removal index outside the current
	// sequence. The sequence is left untouched; callers surfaced a stale
	// index and must not have it silently swallowed.
	ErrIndexOutOfRange = errors.New("cart service: index out of range")
	// ErrEmptyCart indicates checkout was attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart service: cart is empty")
)

// Notifier presents a transient user-facing message.
type Notifier interface {
	Notify(message string, kind domain.NotificationKind)
}

// CartServiceDeps wires persistence, presentation and logging for the cart.
type CartServiceDeps struct {
	Repository repositories.CartRepository
	Notifier   Notifier
	// OnChange runs after every successful mutation, once the sequence has
	// been persisted. The panel renderer rebuilds itself here.
	OnChange func()
	// ClosePanel is invoked by a successful checkout.
	ClosePanel func()
	Logger     *zap.Logger
}

// CartService owns the authoritative cart sequence. Every mutation persists
// the full sequence before the renderer is told to refresh, so a crash
// mid-render never leaves stale persisted state.
type CartService struct {
	repo       repositories.CartRepository
	notifier   Notifier
	onChange   func()
	closePanel func()
	logger     *zap.Logger
	entries    []domain.CartEntry
}

// NewCartService constructs the service and loads any previously persisted
// sequence. A payload that cannot be read starts an empty cart; construction
// never fails on persistence state.
func NewCartService(ctx context.Context, deps CartServiceDeps) (*CartService, error) {
	if deps.Repository == nil {
		return nil, ErrCartRepositoryRequired
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	onChange := deps.OnChange
	if onChange == nil {
		onChange = func() {}
	}
	closePanel := deps.ClosePanel
	if closePanel == nil {
		closePanel = func() {}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &CartService{
		repo:       deps.Repository,
		notifier:   notifier,
		onChange:   onChange,
		closePanel: closePanel,
		logger:     logger,
	}

	entries, err := deps.Repository.Load(ctx)
	if err != nil {
		logger.Warn("failed to load persisted cart, starting empty", zap.Error(err))
		entries = []domain.CartEntry{}
	}
	s.entries = entries
	return s, nil
}

// Add appends the entry to the end of the sequence. There is no capacity
// limit and no dedup; adding the same product twice yields two lines.
func (s *CartService) Add(ctx context.Context, entry domain.CartEntry) {
	s.entries = append(s.entries, entry)
	s.persist(ctx)
	s.onChange()
	s.notifier.Notify(fmt.Sprintf("🛍️ %s added to cart!", entry.Name), domain.NotificationSuccess)
}

// Remove deletes and returns the entry at index, shifting later entries down.
// An invalid index fails with ErrIndexOutOfRange and changes nothing.
func (s *CartService) Remove(ctx context.Context, index int) (domain.CartEntry, error) {
	if index < 0 || index >= len(s.entries) {
		return domain.CartEntry{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.entries))
	}

	removed := s.entries[index]
	next := make([]domain.CartEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:index]...)
	next = append(next, s.entries[index+1:]...)
	s.entries = next

	s.persist(ctx)
	s.onChange()
	s.notifier.Notify(fmt.Sprintf("🗑️ Removed %s from cart", removed.Name), domain.NotificationInfo)
	return removed, nil
}

// Clear empties the sequence.
func (s *CartService) Clear(ctx context.Context) {
	s.entries = []domain.CartEntry{}
	s.persist(ctx)
	s.onChange()
}

// Checkout confirms the purchase: on a non-empty cart it emits a success
// notification, clears the sequence and closes the cart panel. On an empty
// cart it emits an error notification, fails with ErrEmptyCart and leaves the
// panel open. No payment authority is contacted.
func (s *CartService) Checkout(ctx context.Context) error {
	if len(s.entries) == 0 {
		s.notifier.Notify("🛒 Your cart is empty!", domain.NotificationError)
		return ErrEmptyCart
	}

	s.notifier.Notify("✅ Checkout successful! Thank you for your purchase.", domain.NotificationSuccess)
	s.Clear(ctx)
	s.closePanel()
	return nil
}

// Total sums the prices of all present entries; zero for an empty cart.
func (s *CartService) Total() float64 {
	var total float64
	for _, entry := range s.entries {
		total += entry.Price
	}
	return total
}

// Count returns the number of entries.
func (s *CartService) Count() int {
	return len(s.entries)
}

// Entries returns a copy of the sequence in order.
func (s *CartService) Entries() []domain.CartEntry {
	out := make([]domain.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// persist writes the full sequence. Write failures are best-effort: logged,
// never blocking the interaction. An unavailable store is called out
// distinctly so operators can separate outages from encoding problems.
func (s *CartService) persist(ctx context.Context) {
	err := s.repo.Save(ctx, s.entries)
	if err == nil {
		return
	}

	fields := []zap.Field{zap.Error(err), zap.Int("entries", len(s.entries))}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		fields = append(fields, zap.Bool("store_unavailable", repoErr.IsUnavailable()))
	}
	s.logger.Warn("failed to persist cart", fields...)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, domain.NotificationKind) {}
