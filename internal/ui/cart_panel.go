package ui

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"go.uber.org/zap"

	"github.com/maison-field/storefront/internal/platform/surface"
	"github.com/maison-field/storefront/internal/services"
)

// CartPanel projects the cart service's state onto the sidebar: badge count,
// one row per entry in sequence order and the formatted total. The list is
// fully rebuilt on every change; correctness, not diffing, is the contract.
type CartPanel struct {
	surf   *surface.Surface
	cart   *services.CartService
	logger *zap.Logger
}

// NewCartPanel constructs the renderer. Attach wires the cart service once it
// exists; Refresh is a no-op until then.
func NewCartPanel(surf *surface.Surface, logger *zap.Logger) (*CartPanel, error) {
	if surf == nil {
		return nil, fmt.Errorf("cart panel: surface is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartPanel{surf: surf, logger: logger}, nil
}

// Attach binds the cart service the panel renders and mutates.
func (p *CartPanel) Attach(cart *services.CartService) {
	p.cart = cart
}

// Refresh rebuilds badge, rows and total from the current cart state and
// re-registers each row's removal control with its captured index.
func (p *CartPanel) Refresh(ctx context.Context) {
	if p.cart == nil {
		return
	}

	p.surf.Find(".cart-count").SetText(strconv.Itoa(p.cart.Count()))

	list := p.surf.Find(".cart-items")
	list.SetHTML("")
	for i, entry := range p.cart.Entries() {
		list.AppendHTML(fmt.Sprintf(`
			<div class="cart-item">
				<img src=%q class="cart-item-img" alt=%q>
				<div class="cart-item-details">
					<div class="cart-item-name">%s</div>
					<div class="cart-item-price">%s</div>
				</div>
				<button class="remove-item" data-index="%d">×</button>
			</div>`,
			entry.Image,
			html.EscapeString(entry.Name),
			p.surf.Sanitize(entry.Name),
			FormatPrice(entry.Price),
			i,
		))
	}

	p.surf.Find(".cart-total h4").SetText("Total: " + FormatPrice(p.cart.Total()))

	list.Find(".remove-item").Each(func(_ int, btn surface.Selection) {
		index, err := strconv.Atoi(btn.Attr("data-index"))
		if err != nil {
			return
		}
		btn.OnClick(func(surface.Event) {
			if _, err := p.cart.Remove(ctx, index); err != nil {
				p.logger.Error("cart row removal failed", zap.Int("index", index), zap.Error(err))
			}
		})
	})
}

// Toggle flips the sidebar's visibility.
func (p *CartPanel) Toggle() {
	p.surf.Find(".cart-sidebar").ToggleClass("active")
}

// Close hides the sidebar; used by a successful checkout.
func (p *CartPanel) Close() {
	p.surf.Find(".cart-sidebar").RemoveClass("active")
}

// IsOpen reports whether the sidebar is visible.
func (p *CartPanel) IsOpen() bool {
	return p.surf.Find(".cart-sidebar").HasClass("active")
}

// FormatPrice renders a price with the fixed currency prefix and two
// decimals, e.g. 2000 -> "R2000.00".
func FormatPrice(price float64) string {
	return fmt.Sprintf("R%.2f", price)
}
