package ui

import (
	"fmt"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/platform/surface"
	"github.com/maison-field/storefront/internal/services"
)

// LightboxView renders the full-screen image viewer. Lightbox items carry
// only an image and alt text; there is no price or description here.
type LightboxView struct {
	surf *surface.Surface
}

var _ services.CarouselRenderer = (*LightboxView)(nil)

// NewLightboxView constructs the lightbox presenter.
func NewLightboxView(surf *surface.Surface) (*LightboxView, error) {
	if surf == nil {
		return nil, fmt.Errorf("lightbox view: surface is required")
	}
	return &LightboxView{surf: surf}, nil
}

// Show implements services.CarouselRenderer.
func (v *LightboxView) Show(item domain.CarouselItem, showControls bool) {
	img := v.surf.Find(".lightbox-content")
	img.SetAttr("src", item.Image)
	img.SetAttr("alt", item.Alt)

	display := "none"
	if showControls {
		display = "block"
	}
	v.surf.Find(".lightbox-prev").SetStyle("display", display)
	v.surf.Find(".lightbox-next").SetStyle("display", display)

	v.surf.Find(".lightbox").SetStyle("display", "flex")
}

// Hide implements services.CarouselRenderer.
func (v *LightboxView) Hide() {
	v.surf.Find(".lightbox").SetStyle("display", "none")
}
