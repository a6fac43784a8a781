package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/repositories/memory"
)

type recordedNotification struct {
	message string
	kind    domain.NotificationKind
}

type stubNotifier struct {
	notifications []recordedNotification
}

func (s *stubNotifier) Notify(message string, kind domain.NotificationKind) {
	s.notifications = append(s.notifications, recordedNotification{message: message, kind: kind})
}

func newTestCart(t *testing.T, deps CartServiceDeps) *CartService {
	t.Helper()
	if deps.Repository == nil {
		deps.Repository = memory.New()
	}
	svc, err := NewCartService(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestNewCartService(t *testing.T) {
	t.Run("requires repository", func(t *testing.T) {
		if _, err := NewCartService(context.Background(), CartServiceDeps{}); !errors.Is(err, ErrCartRepositoryRequired) {
			t.Fatalf("expected ErrCartRepositoryRequired, got %v", err)
		}
	})

	t.Run("recovers corrupt persisted cart as empty", func(t *testing.T) {
		repo := memory.New()
		repo.Prime([]byte("{not json"))
		svc := newTestCart(t, CartServiceDeps{Repository: repo})
		if svc.Count() != 0 {
			t.Fatalf("expected empty cart, got %d entries", svc.Count())
		}
	})

	t.Run("reloads previously persisted entries", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()

		first := newTestCart(t, CartServiceDeps{Repository: repo})
		first.Add(ctx, domain.CartEntry{Name: "LUXURY DRESS", Price: 1200, Image: "a.jpg"})
		first.Add(ctx, domain.CartEntry{Name: "HANDBAG", Price: 800, Image: "b.jpg"})

		second := newTestCart(t, CartServiceDeps{Repository: repo})
		if second.Count() != 2 {
			t.Fatalf("expected 2 reloaded entries, got %d", second.Count())
		}
		if second.Total() != 2000 {
			t.Fatalf("expected reloaded total 2000, got %v", second.Total())
		}
	})
}

func TestCartServiceAdd(t *testing.T) {
	ctx := context.Background()
	notifier := &stubNotifier{}
	svc := newTestCart(t, CartServiceDeps{Notifier: notifier})

	svc.Add(ctx, domain.CartEntry{Name: "LUXURY DRESS", Price: 1200, Image: "a.jpg"})
	svc.Add(ctx, domain.CartEntry{Name: "HANDBAG", Price: 800, Image: "b.jpg"})

	if svc.Count() != 2 {
		t.Fatalf("expected count 2, got %d", svc.Count())
	}
	if svc.Total() != 2000 {
		t.Fatalf("expected total 2000, got %v", svc.Total())
	}
	entries := svc.Entries()
	if entries[0].Name != "LUXURY DRESS" || entries[1].Name != "HANDBAG" {
		t.Fatalf("expected insertion order preserved, got %+v", entries)
	}
	if len(notifier.notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.notifications))
	}
	if notifier.notifications[0].kind != domain.NotificationSuccess {
		t.Fatalf("expected success notification, got %s", notifier.notifications[0].kind)
	}

	// No dedup: adding the same product adds a second line.
	svc.Add(ctx, domain.CartEntry{Name: "HANDBAG", Price: 800, Image: "b.jpg"})
	if svc.Count() != 3 {
		t.Fatalf("expected count 3 after duplicate add, got %d", svc.Count())
	}
}

func TestCartServicePersistsBeforeRender(t *testing.T) {
	ctx := context.Background()
	repo := &orderRecordingRepository{inner: memory.New()}
	var order []string
	repo.onSave = func() { order = append(order, "persist") }

	svc := newTestCart(t, CartServiceDeps{
		Repository: repo,
		OnChange:   func() { order = append(order, "render") },
	})

	svc.Add(ctx, domain.CartEntry{Name: "HANDBAG", Price: 800})
	if len(order) != 2 || order[0] != "persist" || order[1] != "render" {
		t.Fatalf("expected persist-then-render, got %v", order)
	}
}

func TestCartServiceRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes at index and shifts the rest", func(t *testing.T) {
		notifier := &stubNotifier{}
		svc := newTestCart(t, CartServiceDeps{Notifier: notifier})
		svc.Add(ctx, domain.CartEntry{Name: "A", Price: 10})
		svc.Add(ctx, domain.CartEntry{Name: "B", Price: 20})
		svc.Add(ctx, domain.CartEntry{Name: "C", Price: 30})

		removed, err := svc.Remove(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed.Name != "B" {
			t.Fatalf("expected to remove B, got %s", removed.Name)
		}
		entries := svc.Entries()
		if len(entries) != 2 || entries[0].Name != "A" || entries[1].Name != "C" {
			t.Fatalf("expected [A C], got %+v", entries)
		}
		if svc.Total() != 40 {
			t.Fatalf("expected total 40, got %v", svc.Total())
		}
		last := notifier.notifications[len(notifier.notifications)-1]
		if last.kind != domain.NotificationInfo {
			t.Fatalf("expected info notification for removal, got %s", last.kind)
		}
	})

	t.Run("invalid index leaves the sequence unchanged", func(t *testing.T) {
		svc := newTestCart(t, CartServiceDeps{})
		svc.Add(ctx, domain.CartEntry{Name: "A", Price: 10})

		for _, index := range []int{-1, 1, 99} {
			if _, err := svc.Remove(ctx, index); !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
			}
		}
		if svc.Count() != 1 || svc.Total() != 10 {
			t.Fatalf("expected sequence unchanged, got count=%d total=%v", svc.Count(), svc.Total())
		}
	})
}

func TestCartServiceCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart fails without state change", func(t *testing.T) {
		notifier := &stubNotifier{}
		panelClosed := false
		svc := newTestCart(t, CartServiceDeps{
			Notifier:   notifier,
			ClosePanel: func() { panelClosed = true },
		})

		if err := svc.Checkout(ctx); !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
		if svc.Count() != 0 {
			t.Fatalf("expected count to stay 0, got %d", svc.Count())
		}
		if panelClosed {
			t.Fatalf("expected cart panel to stay open")
		}
		if len(notifier.notifications) != 1 || notifier.notifications[0].kind != domain.NotificationError {
			t.Fatalf("expected one error notification, got %+v", notifier.notifications)
		}
	})

	t.Run("non-empty cart clears and closes the panel", func(t *testing.T) {
		notifier := &stubNotifier{}
		panelClosed := false
		svc := newTestCart(t, CartServiceDeps{
			Notifier:   notifier,
			ClosePanel: func() { panelClosed = true },
		})
		svc.Add(ctx, domain.CartEntry{Name: "A", Price: 150})
		svc.Add(ctx, domain.CartEntry{Name: "B", Price: 100})

		if err := svc.Checkout(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if svc.Count() != 0 {
			t.Fatalf("expected empty cart after checkout, got %d", svc.Count())
		}
		if !panelClosed {
			t.Fatalf("expected cart panel to close")
		}
		var sawSuccess bool
		for _, n := range notifier.notifications {
			if n.kind == domain.NotificationSuccess {
				sawSuccess = true
			}
		}
		if !sawSuccess {
			t.Fatalf("expected a success notification, got %+v", notifier.notifications)
		}
	})
}

func TestCartServiceSaveFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	svc := newTestCart(t, CartServiceDeps{Repository: repo})

	repo.FailNext(errors.New("disk full"), nil)
	svc.Add(ctx, domain.CartEntry{Name: "A", Price: 10})

	if svc.Count() != 1 {
		t.Fatalf("expected in-memory state to advance despite save failure, got %d", svc.Count())
	}
}

func TestCartServicePersistLogsStoreAvailability(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	repo := memory.New()
	svc := newTestCart(t, CartServiceDeps{
		Repository: repo,
		Logger:     zap.New(core),
	})

	repo.FailNext(unavailableStoreErr{}, nil)
	svc.Add(ctx, domain.CartEntry{Name: "A", Price: 10})

	entries := logs.FilterMessage("failed to persist cart").All()
	if len(entries) != 1 {
		t.Fatalf("expected one persist warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	unavailable, ok := fields["store_unavailable"].(bool)
	if !ok || !unavailable {
		t.Fatalf("expected store_unavailable=true field, got %v", fields)
	}

	// A plain error carries no availability claim.
	repo.FailNext(errors.New("encode failed"), nil)
	svc.Add(ctx, domain.CartEntry{Name: "B", Price: 20})

	entries = logs.FilterMessage("failed to persist cart").All()
	if len(entries) != 2 {
		t.Fatalf("expected a second persist warning, got %d", len(entries))
	}
	if _, present := entries[1].ContextMap()["store_unavailable"]; present {
		t.Fatalf("expected no availability field for an uncategorised error")
	}
}

type unavailableStoreErr struct{}

func (unavailableStoreErr) Error() string       { return "store offline" }
func (unavailableStoreErr) IsNotFound() bool    { return false }
func (unavailableStoreErr) IsUnavailable() bool { return true }

type orderRecordingRepository struct {
	inner  *memory.CartRepository
	onSave func()
}

func (r *orderRecordingRepository) Load(ctx context.Context) ([]domain.CartEntry, error) {
	return r.inner.Load(ctx)
}

func (r *orderRecordingRepository) Save(ctx context.Context, entries []domain.CartEntry) error {
	if r.onSave != nil {
		r.onSave()
	}
	return r.inner.Save(ctx, entries)
}

func (r *orderRecordingRepository) Close() error { return r.inner.Close() }
