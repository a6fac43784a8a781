// Package di assembles the repository, services, presenters and controller
// into a runnable page session.
package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/maison-field/storefront/internal/catalog"
	"github.com/maison-field/storefront/internal/platform/config"
	"github.com/maison-field/storefront/internal/platform/surface"
	"github.com/maison-field/storefront/internal/repositories"
	"github.com/maison-field/storefront/internal/repositories/badgerstore"
	"github.com/maison-field/storefront/internal/repositories/memory"
	"github.com/maison-field/storefront/internal/services"
	"github.com/maison-field/storefront/internal/ui"
)

// Container wires the page session for runtime use.
type Container struct {
	Config     config.Config
	Surface    *surface.Surface
	Controller *ui.Controller
	Cart       *services.CartService

	repo repositories.CartRepository
}

// NewContainer constructs the runtime dependencies over the embedded page
// document.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	surf, err := surface.Parse(ui.PageHTML)
	if err != nil {
		return nil, fmt.Errorf("build surface: %w", err)
	}

	repo, err := openRepository(cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("open cart repository: %w", err)
	}

	// The controller owns the dispatch mutex but is built last; notification
	// timers route through this indirection so they serialize once it exists.
	var controller *ui.Controller
	dispatch := func(fn func()) {
		if controller != nil {
			controller.Do(fn)
			return
		}
		fn()
	}

	notifier, err := ui.NewNotifier(ui.NotifierDeps{Surface: surf, Dispatch: dispatch})
	if err != nil {
		return nil, fmt.Errorf("build notifier: %w", err)
	}

	panel, err := ui.NewCartPanel(surf, logger.Named("cart_panel"))
	if err != nil {
		return nil, fmt.Errorf("build cart panel: %w", err)
	}

	cart, err := services.NewCartService(ctx, services.CartServiceDeps{
		Repository: repo,
		Notifier:   notifier,
		OnChange:   func() { panel.Refresh(ctx) },
		ClosePanel: panel.Close,
		Logger:     logger.Named("cart"),
	})
	if err != nil {
		return nil, fmt.Errorf("build cart service: %w", err)
	}
	panel.Attach(cart)

	popupView, err := ui.NewPopupView(surf)
	if err != nil {
		return nil, fmt.Errorf("build popup view: %w", err)
	}
	popup, err := services.NewCarousel(services.CarouselDeps{Renderer: popupView, Scroll: surf})
	if err != nil {
		return nil, fmt.Errorf("build popup carousel: %w", err)
	}

	lightboxView, err := ui.NewLightboxView(surf)
	if err != nil {
		return nil, fmt.Errorf("build lightbox view: %w", err)
	}
	lightbox, err := services.NewCarousel(services.CarouselDeps{Renderer: lightboxView, Scroll: surf})
	if err != nil {
		return nil, fmt.Errorf("build lightbox carousel: %w", err)
	}

	form, err := ui.NewContactForm(surf)
	if err != nil {
		return nil, fmt.Errorf("build contact form: %w", err)
	}

	products, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	controller, err = ui.NewController(ctx, ui.ControllerDeps{
		Surface:  surf,
		Cart:     cart,
		Popup:    popup,
		Lightbox: lightbox,
		Panel:    panel,
		Form:     form,
		Contact:  services.NewContactService(),
		Catalog:  products,
		Notifier: notifier,
		Logger:   logger.Named("controller"),
	})
	if err != nil {
		return nil, fmt.Errorf("build controller: %w", err)
	}

	return &Container{
		Config:     cfg,
		Surface:    surf,
		Controller: controller,
		Cart:       cart,
		repo:       repo,
	}, nil
}

// Close releases the underlying key-value store.
func (c *Container) Close() error {
	if c == nil || c.repo == nil {
		return nil
	}
	return c.repo.Close()
}

func openRepository(cfg config.StoreConfig, logger *zap.Logger) (repositories.CartRepository, error) {
	if cfg.InMemory {
		return memory.New(), nil
	}
	return badgerstore.Open(badgerstore.Options{
		Dir:     cfg.Dir,
		CartKey: cfg.CartKey,
		Logger:  logger.Named("badgerstore"),
	})
}
