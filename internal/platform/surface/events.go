package surface

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Event carries what a handler needs about a dispatched interaction.
type Event struct {
	Type   string
	Key    string
	Target Selection
}

// Handler reacts to a dispatched event.
type Handler func(ev Event)

type binding struct {
	event string
	fn    Handler
}

// EventClick is the interaction type for pointer activation.
const EventClick = "click"

// OnClick registers fn against every element currently matching the selector,
// mirroring per-element listener registration. Elements added later need their
// own registration.
func (s *Surface) OnClick(selector string, fn Handler) {
	s.Find(selector).OnClick(fn)
}

// OnClick registers fn on every element of the selection.
func (sel Selection) OnClick(fn Handler) {
	if !sel.Exists() {
		return
	}
	surf := sel.surf
	sel.sel.Each(func(_ int, gs *goquery.Selection) {
		node := gs.Get(0)
		surf.bindings[node] = append(surf.bindings[node], binding{event: EventClick, fn: fn})
	})
}

// OnKeydown registers a document-level key handler.
func (s *Surface) OnKeydown(fn func(key string)) {
	s.keydown = append(s.keydown, fn)
}

// Click dispatches a click on the first element matching the selector. Only
// handlers registered on that exact element run; there is no bubbling, which
// is what lets overlay-background handlers distinguish themselves from the
// media they contain.
func (s *Surface) Click(selector string) bool {
	return s.ClickOn(s.Find(selector).First())
}

// ClickOn dispatches a click on the first element of the selection.
func (s *Surface) ClickOn(target Selection) bool {
	if !target.Exists() {
		return false
	}
	node := target.sel.Get(0)
	handlers := append([]binding(nil), s.bindings[node]...)
	fired := false
	for _, b := range handlers {
		if b.event != EventClick {
			continue
		}
		fired = true
		b.fn(Event{Type: EventClick, Target: Selection{surf: s, sel: target.sel.First()}})
	}
	return fired
}

// Keydown dispatches a key press to every document-level handler.
func (s *Surface) Keydown(key string) {
	for _, fn := range append([]func(string){}, s.keydown...) {
		fn(key)
	}
}

func (s *Surface) dropSubtreeBindings(sel *goquery.Selection) {
	if sel == nil {
		return
	}
	sel.Each(func(_ int, gs *goquery.Selection) {
		for _, root := range gs.Nodes {
			var walk func(n *html.Node)
			walk = func(n *html.Node) {
				delete(s.bindings, n)
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
			}
			walk(root)
		}
	})
}
