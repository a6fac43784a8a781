package ui

import (
	"fmt"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/platform/surface"
	"github.com/maison-field/storefront/internal/services"
)

// PopupView renders the product detail popup: image, name, display price and
// description, with prev/next controls hidden for single-item sessions.
type PopupView struct {
	surf *surface.Surface
}

var _ services.CarouselRenderer = (*PopupView)(nil)

// NewPopupView constructs the popup presenter.
func NewPopupView(surf *surface.Surface) (*PopupView, error) {
	if surf == nil {
		return nil, fmt.Errorf("popup view: surface is required")
	}
	return &PopupView{surf: surf}, nil
}

// Show implements services.CarouselRenderer.
func (v *PopupView) Show(item domain.CarouselItem, showControls bool) {
	img := v.surf.Find(".enhanced-popup-img")
	img.SetAttr("src", item.Image)
	img.SetAttr("alt", item.Name)
	v.surf.Find(".enhanced-popup-name").SetText(item.Name)
	v.surf.Find(".enhanced-popup-price").SetText(item.Price)
	v.surf.Find(".enhanced-popup-description").SetText(item.Description)

	display := "none"
	if showControls {
		display = "flex"
	}
	v.surf.Find(".enhanced-popup-prev").SetStyle("display", display)
	v.surf.Find(".enhanced-popup-next").SetStyle("display", display)

	v.surf.Find(".enhanced-popup").AddClass("active")
}

// Hide implements services.CarouselRenderer.
func (v *PopupView) Hide() {
	v.surf.Find(".enhanced-popup").RemoveClass("active")
}
