package ui

import (
	"strings"
	"testing"
	"time"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/platform/surface"
)

// drainDispatch funnels timer callbacks into the test goroutine so the
// surface is only ever touched from one place, the way the controller's
// dispatch loop does in production.
func drainDispatch(t *testing.T) (func(fn func()), func(n int)) {
	t.Helper()
	queue := make(chan func(), 16)
	dispatch := func(fn func()) { queue <- fn }
	run := func(n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			select {
			case fn := <-queue:
				fn()
			case <-time.After(2 * time.Second):
				t.Fatalf("timed out waiting for dispatch %d of %d", i+1, n)
			}
		}
	}
	return dispatch, run
}

func newNotifierSurface(t *testing.T) *surface.Surface {
	t.Helper()
	surf, err := surface.Parse(`<!DOCTYPE html><html><body></body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return surf
}

func TestNotifyLifecycle(t *testing.T) {
	surf := newNotifierSurface(t)
	dispatch, run := drainDispatch(t)
	notifier, err := NewNotifier(NotifierDeps{
		Surface:     surf,
		Dispatch:    dispatch,
		ShowDelay:   time.Millisecond,
		DisplayFor:  5 * time.Millisecond,
		RemoveDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier.Notify("🛍️ LUXURY DRESS added to cart!", domain.NotificationSuccess)

	el := surf.Find(".notification")
	if !el.Exists() {
		t.Fatalf("expected notification element appended")
	}
	if got := el.Text(); got != "🛍️ LUXURY DRESS added to cart!" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := el.Style("border-left"); got != "4px solid #4caf50" {
		t.Fatalf("unexpected accent %q", got)
	}
	if el.HasClass("show") {
		t.Fatalf("expected notification hidden before the entry delay")
	}

	run(1) // entry
	if !surf.Find(".notification").HasClass("show") {
		t.Fatalf("expected show class after entry delay")
	}

	run(1) // hide
	if surf.Find(".notification").HasClass("show") {
		t.Fatalf("expected show class dropped after display duration")
	}

	run(1) // purge
	if surf.Find(".notification").Exists() {
		t.Fatalf("expected notification removed from the page")
	}
}

func TestNotifyAccents(t *testing.T) {
	cases := []struct {
		kind   domain.NotificationKind
		accent string
	}{
		{domain.NotificationSuccess, "#4caf50"},
		{domain.NotificationError, "#f44336"},
		{domain.NotificationInfo, "#ffd700"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			surf := newNotifierSurface(t)
			notifier, err := NewNotifier(NotifierDeps{
				Surface:     surf,
				ShowDelay:   time.Hour,
				DisplayFor:  time.Hour,
				RemoveDelay: time.Hour,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			notifier.Notify("message", tc.kind)
			if got := surf.Find(".notification").Style("border-left"); !strings.HasSuffix(got, tc.accent) {
				t.Fatalf("expected accent %s, got %q", tc.accent, got)
			}
		})
	}
}

func TestNotifyStacksIndependently(t *testing.T) {
	surf := newNotifierSurface(t)
	notifier, err := NewNotifier(NotifierDeps{
		Surface:     surf,
		ShowDelay:   time.Hour,
		DisplayFor:  time.Hour,
		RemoveDelay: time.Hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier.Notify("first", domain.NotificationInfo)
	notifier.Notify("second", domain.NotificationInfo)

	els := surf.Find(".notification")
	if els.Length() != 2 {
		t.Fatalf("expected 2 stacked notifications, got %d", els.Length())
	}
	if got := els.Eq(0).Text(); got != "first" {
		t.Fatalf("expected first in place, got %q", got)
	}
	if got := els.Eq(1).Text(); got != "second" {
		t.Fatalf("expected second appended after first, got %q", got)
	}
}

func TestNewNotifierRequiresSurface(t *testing.T) {
	if _, err := NewNotifier(NotifierDeps{}); err == nil {
		t.Fatalf("expected error for missing surface")
	}
}
