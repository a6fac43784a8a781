package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/maison-field/storefront/internal/catalog"
	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/platform/surface"
	"github.com/maison-field/storefront/internal/services"
)

// PageHTML is the storefront page document the controller drives.
//
//go:embed page.html
var PageHTML string

const (
	productSelector = ".collection-item, .campaign-item, .gallery-item"
	imageSelector   = ".gallery-img, .campaign-img, .collection-img"
	sectionSelector = ".campaigns, .collection-grid, .gallery-grid"

	fallbackName  = "Product"
	fallbackPrice = "Price on request"
)

// ControllerDeps wires every component the page controller binds together.
type ControllerDeps struct {
	Surface  *surface.Surface
	Cart     *services.CartService
	Popup    *services.Carousel
	Lightbox *services.Carousel
	Panel    *CartPanel
	Form     *ContactForm
	Contact  *services.ContactService
	Catalog  *catalog.Catalog
	Notifier services.Notifier
	Logger   *zap.Logger
}

// Controller is the page bootstrap: it binds interaction events to the
// components and serializes every event, including notification timers,
// through one dispatch mutex so the single-threaded UI model holds.
type Controller struct {
	mu   sync.Mutex
	deps ControllerDeps
}

// NewController validates the wiring and binds all page event handlers.
func NewController(ctx context.Context, deps ControllerDeps) (*Controller, error) {
	switch {
	case deps.Surface == nil:
		return nil, errors.New("controller: surface is required")
	case deps.Cart == nil:
		return nil, errors.New("controller: cart service is required")
	case deps.Popup == nil || deps.Lightbox == nil:
		return nil, errors.New("controller: both carousels are required")
	case deps.Panel == nil:
		return nil, errors.New("controller: cart panel is required")
	case deps.Form == nil:
		return nil, errors.New("controller: contact form is required")
	case deps.Contact == nil:
		return nil, errors.New("controller: contact service is required")
	case deps.Catalog == nil:
		return nil, errors.New("controller: catalog is required")
	case deps.Notifier == nil:
		return nil, errors.New("controller: notifier is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	c := &Controller{deps: deps}
	c.bind(ctx)
	return c, nil
}

// Click dispatches a click on the first element matching the selector,
// returning whether any handler ran.
func (c *Controller) Click(selector string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deps.Surface.Click(selector)
}

// Keydown dispatches a key press to the page.
func (c *Controller) Keydown(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deps.Surface.Keydown(key)
}

// Do runs fn on the dispatch loop; notification timers use this to mutate
// the page without interleaving with interaction handlers.
func (c *Controller) Do(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// HTML renders the current page document.
func (c *Controller) HTML() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deps.Surface.HTML()
}

func (c *Controller) bind(ctx context.Context) {
	surf := c.deps.Surface

	// Product popups and the lightbox share the section-gathering entry
	// point: clicking one member opens a session over every sibling in the
	// same section, positioned at the clicked member.
	surf.OnClick(productSelector, func(ev surface.Event) {
		c.openPopupFrom(ev.Target)
	})
	surf.OnClick(imageSelector, func(ev surface.Event) {
		c.openLightboxFrom(ev.Target)
	})

	surf.OnClick(".enhanced-popup-close", func(surface.Event) { c.deps.Popup.Close() })
	surf.OnClick(".enhanced-popup", func(surface.Event) { c.deps.Popup.Close() })
	surf.OnClick(".enhanced-popup-prev", func(surface.Event) { c.deps.Popup.Prev() })
	surf.OnClick(".enhanced-popup-next", func(surface.Event) { c.deps.Popup.Next() })
	surf.OnClick(".add-to-cart-popup", func(surface.Event) { c.addCurrentToCart(ctx) })

	surf.OnClick(".lightbox-close", func(surface.Event) { c.deps.Lightbox.Close() })
	surf.OnClick(".lightbox", func(surface.Event) { c.deps.Lightbox.Close() })
	surf.OnClick(".lightbox-prev", func(surface.Event) { c.deps.Lightbox.Prev() })
	surf.OnClick(".lightbox-next", func(surface.Event) { c.deps.Lightbox.Next() })

	surf.OnClick(".cart-icon", func(surface.Event) { c.deps.Panel.Toggle() })
	surf.OnClick(".close-cart", func(surface.Event) { c.deps.Panel.Toggle() })
	surf.OnClick(".checkout-btn", func(surface.Event) {
		if err := c.deps.Cart.Checkout(ctx); err != nil {
			c.deps.Logger.Debug("checkout rejected", zap.Error(err))
		}
	})

	surf.OnClick("#contactForm .submit-btn", func(surface.Event) {
		c.submitContactForm()
	})

	// Keys apply to whichever overlay is currently open.
	surf.OnKeydown(func(key string) {
		overlay := c.deps.Popup
		if !overlay.IsOpen() {
			overlay = c.deps.Lightbox
		}
		if !overlay.IsOpen() {
			return
		}
		switch key {
		case "Escape":
			overlay.Close()
		case "ArrowLeft":
			overlay.Prev()
		case "ArrowRight":
			overlay.Next()
		}
	})

	// Render whatever survived the previous page load.
	c.deps.Panel.Refresh(ctx)
}

func (c *Controller) openPopupFrom(target surface.Selection) {
	// One overlay session at a time: opening the popup replaces any open
	// lightbox, so the scroll lock always belongs to exactly one session.
	c.deps.Lightbox.Close()
	items, start := c.gatherSection(target, productSelector, func(el surface.Selection) domain.CarouselItem {
		name := el.Find(".campaign-name").Text()
		if name == "" {
			name = fallbackName
		}
		price := el.Find(".product-price").Text()
		if price == "" {
			price = fallbackPrice
		}
		return domain.CarouselItem{
			Name:        name,
			Price:       price,
			Image:       el.Find("img").Attr("src"),
			Description: c.deps.Catalog.Describe(name),
		}
	})
	if err := c.deps.Popup.Open(items, start); err != nil {
		c.deps.Logger.Error("popup open failed", zap.Error(err))
	}
}

func (c *Controller) openLightboxFrom(target surface.Selection) {
	c.deps.Popup.Close()
	items, start := c.gatherSection(target, imageSelector, func(el surface.Selection) domain.CarouselItem {
		return domain.CarouselItem{
			Image: el.Attr("src"),
			Alt:   el.Attr("alt"),
		}
	})
	if err := c.deps.Lightbox.Open(items, start); err != nil {
		c.deps.Logger.Error("lightbox open failed", zap.Error(err))
	}
}

// gatherSection collects every sibling matching memberSelector inside the
// target's containing section, falling back to the target alone when no
// section encloses it, and reports the target's position in that list.
func (c *Controller) gatherSection(target surface.Selection, memberSelector string, build func(surface.Selection) domain.CarouselItem) ([]domain.CarouselItem, int) {
	section := target.Closest(sectionSelector)
	if !section.Exists() {
		return []domain.CarouselItem{build(target)}, 0
	}

	members := section.Find(memberSelector)
	items := make([]domain.CarouselItem, 0, members.Length())
	members.Each(func(_ int, el surface.Selection) {
		items = append(items, build(el))
	})

	start := members.IndexOf(target)
	if start < 0 {
		return []domain.CarouselItem{build(target)}, 0
	}
	return items, start
}

func (c *Controller) addCurrentToCart(ctx context.Context) {
	item, ok := c.deps.Popup.Current()
	if !ok {
		return
	}
	c.deps.Cart.Add(ctx, domain.CartEntry{
		Name:  item.Name,
		Price: services.ParseDisplayPrice(item.Price),
		Image: item.Image,
	})
}

func (c *Controller) submitContactForm() {
	errs := c.deps.Contact.Validate(c.deps.Form.Read())
	if len(errs) > 0 {
		c.deps.Form.ShowErrors(errs)
		c.deps.Notifier.Notify("❌ Please fix the errors in the form.", domain.NotificationError)
		return
	}

	c.deps.Form.ClearErrors()
	c.deps.Form.Reset()
	c.deps.Form.ShowConfirmation()
	c.deps.Notifier.Notify("✅ Your message has been sent! We will contact you soon.", domain.NotificationSuccess)
}

// SetFormField writes a contact form field value; the HTTP facade uses this
// to mirror typed input into the document before a submit.
func (c *Controller) SetFormField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	field := c.deps.Surface.Find(fmt.Sprintf("#contactForm [name=%s]", name))
	if !field.Exists() {
		return fmt.Errorf("controller: unknown form field %q", name)
	}
	if name == "message" {
		field.SetText(value)
		return nil
	}
	field.SetAttr("value", value)
	return nil
}
