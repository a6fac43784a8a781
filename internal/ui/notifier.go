package ui

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/platform/surface"
)

const (
	defaultShowDelay   = 100 * time.Millisecond
	defaultDisplayFor  = 3 * time.Second
	defaultRemoveDelay = 500 * time.Millisecond
)

// NotifierDeps configures the notification presenter.
type NotifierDeps struct {
	Surface *surface.Surface
	// Dispatch serializes timer callbacks onto the UI dispatch loop. Defaults
	// to running inline.
	Dispatch func(fn func())
	// ShowDelay, DisplayFor and RemoveDelay override the notification
	// lifecycle timing; zero values keep the defaults. Tests shorten these.
	ShowDelay   time.Duration
	DisplayFor  time.Duration
	RemoveDelay time.Duration
}

// Notifier appends transient, auto-dismissing messages to the page. Each
// notification owns its timer pair, stacks independently of the others and is
// not cancellable by later notifications.
type Notifier struct {
	surf        *surface.Surface
	dispatch    func(fn func())
	showDelay   time.Duration
	displayFor  time.Duration
	removeDelay time.Duration
	// active keeps each live notification's timers; a future dismiss-all can
	// stop them here.
	active map[string]*notification
}

type notification struct {
	id    string
	show  *time.Timer
	hide  *time.Timer
	purge *time.Timer
}

// NewNotifier constructs the presenter over the supplied surface.
func NewNotifier(deps NotifierDeps) (*Notifier, error) {
	if deps.Surface == nil {
		return nil, fmt.Errorf("notifier: surface is required")
	}
	dispatch := deps.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	n := &Notifier{
		surf:        deps.Surface,
		dispatch:    dispatch,
		showDelay:   deps.ShowDelay,
		displayFor:  deps.DisplayFor,
		removeDelay: deps.RemoveDelay,
		active:      map[string]*notification{},
	}
	if n.showDelay == 0 {
		n.showDelay = defaultShowDelay
	}
	if n.displayFor == 0 {
		n.displayFor = defaultDisplayFor
	}
	if n.removeDelay == 0 {
		n.removeDelay = defaultRemoveDelay
	}
	return n, nil
}

// Notify appends a notification styled by kind, transitions it visible after
// the entry delay, hides it after the display duration and removes it from
// the page after the removal delay.
func (n *Notifier) Notify(message string, kind domain.NotificationKind) {
	id := "notification-" + ulid.Make().String()

	body := n.surf.Find("body")
	body.AppendHTML(fmt.Sprintf(
		`<div class="notification" id=%q style="border-left: 4px solid %s"></div>`,
		id, accentFor(kind),
	))
	n.surf.Find("#"+id).SetText(message)

	record := &notification{id: id}
	record.show = time.AfterFunc(n.showDelay, func() {
		n.dispatch(func() {
			n.surf.Find("#" + id).AddClass("show")
		})
	})
	record.hide = time.AfterFunc(n.displayFor, func() {
		n.dispatch(func() {
			n.surf.Find("#" + id).RemoveClass("show")
			record.purge = time.AfterFunc(n.removeDelay, func() {
				n.dispatch(func() {
					n.surf.Find("#" + id).Remove()
					delete(n.active, id)
				})
			})
		})
	})
	n.active[id] = record
}

func accentFor(kind domain.NotificationKind) string {
	switch kind {
	case domain.NotificationSuccess:
		return "#4caf50"
	case domain.NotificationError:
		return "#f44336"
	default:
		return "#ffd700"
	}
}
