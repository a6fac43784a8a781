// Package surface exposes the page document as a capability interface:
// components query elements by class or structural relation and mutate text,
// attributes, styles and children, without reaching into the parser directly.
// The surface is not safe for concurrent use; the controller serializes all
// access through its dispatch loop.
package surface

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Surface wraps one parsed page document together with its event registry and
// the page-level scroll-lock flag.
type Surface struct {
	doc      *goquery.Document
	policy   *bluemonday.Policy
	bindings map[*html.Node][]binding
	keydown  []func(key string)
	locked   bool
}

// Parse builds a Surface from raw page markup.
func Parse(markup string) (*Surface, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("surface: parse document: %w", err)
	}
	return &Surface{
		doc:      doc,
		policy:   bluemonday.StrictPolicy(),
		bindings: map[*html.Node][]binding{},
	}, nil
}

// Find selects elements matching the CSS selector. An empty match is a valid
// selection whose mutators are no-ops.
func (s *Surface) Find(selector string) Selection {
	return Selection{surf: s, sel: s.doc.Find(selector)}
}

// Sanitize strips markup from user-derived text before it is interpolated
// into the document.
func (s *Surface) Sanitize(value string) string {
	return s.policy.Sanitize(value)
}

// HTML renders the whole document back to markup.
func (s *Surface) HTML() (string, error) {
	out, err := s.doc.Html()
	if err != nil {
		return "", fmt.Errorf("surface: render document: %w", err)
	}
	return out, nil
}

// LockScroll prevents background scrolling while an overlay is open.
func (s *Surface) LockScroll() {
	s.locked = true
	s.Find("body").SetStyle("overflow", "hidden")
}

// UnlockScroll releases the scroll lock.
func (s *Surface) UnlockScroll() {
	s.locked = false
	s.Find("body").SetStyle("overflow", "")
}

// ScrollLocked reports the page-level scroll-lock flag.
func (s *Surface) ScrollLocked() bool {
	return s.locked
}

// Selection is a possibly-empty set of elements. Reads address the first
// element; mutators apply to every element in the set.
type Selection struct {
	surf *Surface
	sel  *goquery.Selection
}

// Exists reports whether the selection matched at least one element.
func (sel Selection) Exists() bool { return sel.sel != nil && sel.sel.Length() > 0 }

// Length returns the number of matched elements.
func (sel Selection) Length() int {
	if sel.sel == nil {
		return 0
	}
	return sel.sel.Length()
}

// Eq narrows the selection to the element at index i.
func (sel Selection) Eq(i int) Selection {
	return Selection{surf: sel.surf, sel: sel.sel.Eq(i)}
}

// First narrows the selection to its first element.
func (sel Selection) First() Selection {
	return Selection{surf: sel.surf, sel: sel.sel.First()}
}

// Find selects descendants of the current set matching the selector.
func (sel Selection) Find(selector string) Selection {
	return Selection{surf: sel.surf, sel: sel.sel.Find(selector)}
}

// Closest walks up to the nearest ancestor matching the selector.
func (sel Selection) Closest(selector string) Selection {
	return Selection{surf: sel.surf, sel: sel.sel.Closest(selector)}
}

// Parent selects the immediate parent of each element in the set.
func (sel Selection) Parent() Selection {
	return Selection{surf: sel.surf, sel: sel.sel.Parent()}
}

// Each visits every element in the set as a single-element selection.
func (sel Selection) Each(fn func(i int, el Selection)) {
	sel.sel.Each(func(i int, gs *goquery.Selection) {
		fn(i, Selection{surf: sel.surf, sel: gs})
	})
}

// IndexOf returns the position of other's first element within this set, or
// -1 when absent.
func (sel Selection) IndexOf(other Selection) int {
	if !other.Exists() {
		return -1
	}
	target := other.sel.Get(0)
	idx := -1
	sel.sel.Each(func(i int, gs *goquery.Selection) {
		if idx == -1 && gs.Get(0) == target {
			idx = i
		}
	})
	return idx
}

// Text returns the combined text content of the selection.
func (sel Selection) Text() string {
	if sel.sel == nil {
		return ""
	}
	return strings.TrimSpace(sel.sel.Text())
}

// SetText replaces the text content of every matched element. Text nodes are
// escaped on render, so the value needs no sanitising here; Sanitize covers
// values interpolated into HTML fragments instead.
func (sel Selection) SetText(value string) {
	if !sel.Exists() {
		return
	}
	sel.sel.SetText(value)
}

// Attr reads an attribute from the first matched element.
func (sel Selection) Attr(name string) string {
	if sel.sel == nil {
		return ""
	}
	value, _ := sel.sel.Attr(name)
	return value
}

// SetAttr writes an attribute on every matched element.
func (sel Selection) SetAttr(name, value string) {
	if !sel.Exists() {
		return
	}
	sel.sel.SetAttr(name, value)
}

// AddClass adds the class to every matched element.
func (sel Selection) AddClass(class string) {
	if sel.Exists() {
		sel.sel.AddClass(class)
	}
}

// RemoveClass removes the class from every matched element.
func (sel Selection) RemoveClass(class string) {
	if sel.Exists() {
		sel.sel.RemoveClass(class)
	}
}

// ToggleClass flips the class on every matched element.
func (sel Selection) ToggleClass(class string) {
	if sel.Exists() {
		sel.sel.ToggleClass(class)
	}
}

// HasClass reports whether any matched element carries the class.
func (sel Selection) HasClass(class string) bool {
	return sel.sel != nil && sel.sel.HasClass(class)
}

// Style reads one property from the inline style of the first element.
func (sel Selection) Style(prop string) string {
	return styleLookup(sel.Attr("style"), prop)
}

// SetStyle writes one property on the inline style of every matched element.
// An empty value removes the property.
func (sel Selection) SetStyle(prop, value string) {
	if !sel.Exists() {
		return
	}
	sel.sel.Each(func(_ int, gs *goquery.Selection) {
		current, _ := gs.Attr("style")
		next := styleSet(current, prop, value)
		if next == "" {
			gs.RemoveAttr("style")
			return
		}
		gs.SetAttr("style", next)
	})
}

// AppendHTML parses the fragment and appends it to every matched element.
// Callers interpolate user-derived values through Surface.Sanitize.
func (sel Selection) AppendHTML(fragment string) {
	if sel.Exists() {
		sel.sel.AppendHtml(fragment)
	}
}

// SetHTML replaces the children of every matched element with the fragment.
// Bindings below the replaced children are dropped.
func (sel Selection) SetHTML(fragment string) {
	if !sel.Exists() {
		return
	}
	sel.sel.Each(func(_ int, gs *goquery.Selection) {
		sel.surf.dropSubtreeBindings(gs.Children())
	})
	sel.sel.SetHtml(fragment)
}

// Remove detaches every matched element and drops its event bindings.
func (sel Selection) Remove() {
	if !sel.Exists() {
		return
	}
	sel.surf.dropSubtreeBindings(sel.sel)
	sel.sel.Remove()
}

func styleLookup(style, prop string) string {
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(name) == prop {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func styleSet(style, prop, value string) string {
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		name, _, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(name) == prop || strings.TrimSpace(decl) == "" {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if value != "" {
		decls = append(decls, prop+": "+value)
	}
	return strings.Join(decls, "; ")
}
