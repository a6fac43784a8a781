package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	domain "github.com/maison-field/storefront/internal/domain"
)

var (
	// ErrCarouselRendererRequired indicates the renderer dependency is absent.
	ErrCarouselRendererRequired = errors.New("carousel: renderer is required")
	// ErrNoItems indicates Open was called with an empty item list.
	ErrNoItems = errors.New("carousel: item list is empty")
	// ErrStartIndexOutOfRange indicates Open was called with an invalid start
	// index for the supplied list.
	ErrStartIndexOutOfRange = errors.New("carousel: start index out of range")
)

// CarouselRenderer projects the current item onto the page. Show runs on open
// and after every navigation step; showControls is false for single-item
// sessions, which hide their prev/next controls. Hide runs on close.
type CarouselRenderer interface {
	Show(item domain.CarouselItem, showControls bool)
	Hide()
}

// ScrollLocker toggles the page-level scroll lock shared by both carousel
// types.
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

// CarouselDeps wires the presenter and scroll lock for one carousel instance.
type CarouselDeps struct {
	Renderer CarouselRenderer
	Scroll   ScrollLocker
}

// Carousel is the navigation state machine shared by the product popup and
// the image lightbox: Closed, or Open over a non-empty ordered list with a
// current index always in [0, len). Navigation wraps cyclically. One session
// per instance; opening while open replaces the session.
type Carousel struct {
	renderer CarouselRenderer
	scroll   ScrollLocker
	items    []domain.CarouselItem
	index    int
	open     bool
}

// NewCarousel constructs a carousel with the supplied presenter.
func NewCarousel(deps CarouselDeps) (*Carousel, error) {
	if deps.Renderer == nil {
		return nil, ErrCarouselRendererRequired
	}
	scroll := deps.Scroll
	if scroll == nil {
		scroll = noopScroll{}
	}
	return &Carousel{renderer: deps.Renderer, scroll: scroll}, nil
}

// Open starts a session over items at start, renders that item and acquires
// the scroll lock. Items are copied; later mutation of the caller's slice
// does not affect the session.
func (c *Carousel) Open(items []domain.CarouselItem, start int) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if start < 0 || start >= len(items) {
		return fmt.Errorf("%w: %d of %d", ErrStartIndexOutOfRange, start, len(items))
	}

	c.items = make([]domain.CarouselItem, len(items))
	copy(c.items, items)
	c.index = start
	c.open = true

	c.scroll.LockScroll()
	c.render()
	return nil
}

// Next advances cyclically. No-op when closed or single-item.
func (c *Carousel) Next() {
	c.step(1)
}

// Prev steps back cyclically. No-op when closed or single-item.
func (c *Carousel) Prev() {
	c.step(-1)
}

func (c *Carousel) step(delta int) {
	if !c.open || len(c.items) <= 1 {
		return
	}
	c.index = (c.index + delta + len(c.items)) % len(c.items)
	c.render()
}

// Close ends the session, clears transient item state and releases the
// scroll lock.
func (c *Carousel) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.items = nil
	c.index = 0
	c.renderer.Hide()
	c.scroll.UnlockScroll()
}

// IsOpen reports whether a session is active.
func (c *Carousel) IsOpen() bool {
	return c.open
}

// Current returns the item at the current index, and false when closed.
func (c *Carousel) Current() (domain.CarouselItem, bool) {
	if !c.open {
		return domain.CarouselItem{}, false
	}
	return c.items[c.index], true
}

// Index returns the current position; zero when closed.
func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) render() {
	c.renderer.Show(c.items[c.index], len(c.items) > 1)
}

type noopScroll struct{}

func (noopScroll) LockScroll()   {}
func (noopScroll) UnlockScroll() {}

// DefaultItemPrice substitutes for a display price that does not parse.
const DefaultItemPrice = 100

var priceFormatting = regexp.MustCompile(`[R,]`)

// ParseDisplayPrice turns a display price such as "R1,200.00" into its
// numeric value by stripping the currency letter and thousands separators.
// Text that fails to parse, or parses to a non-positive value, yields
// DefaultItemPrice rather than an error; malformed prices must never block an
// add-to-cart, and cart entries keep a non-negative price.
func ParseDisplayPrice(display string) float64 {
	stripped := strings.TrimSpace(priceFormatting.ReplaceAllString(display, ""))
	price, err := strconv.ParseFloat(stripped, 64)
	if err != nil || price <= 0 {
		return DefaultItemPrice
	}
	return price
}
