// Package handlers exposes the page controller over HTTP: the rendered
// document, an event endpoint feeding interactions into the controller, and
// health probes.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/maison-field/storefront/internal/platform/observability"
)

const defaultTimeout = 30 * time.Second

// PageController is the controller capability the HTTP facade needs.
type PageController interface {
	Click(selector string) bool
	Keydown(key string)
	SetFormField(name, value string) error
	HTML() (string, error)
}

// RouterDeps wires the controller and logger into the router.
type RouterDeps struct {
	Controller PageController
	Logger     *zap.Logger
}

// NewRouter constructs the chi router with shared middleware and routes.
func NewRouter(deps RouterDeps) (chi.Router, error) {
	if deps.Controller == nil {
		return nil, errors.New("handlers: controller is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	h := &pageHandlers{controller: deps.Controller, logger: deps.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultTimeout))
	r.Use(observability.RequestLoggerMiddleware(deps.Logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "route_not_found", fmt.Sprintf("no route for %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path))
	})

	r.Get("/healthz", h.Healthz)
	r.Get("/", h.Page)
	r.Post("/events", h.Event)

	return r, nil
}

type pageHandlers struct {
	controller PageController
	logger     *zap.Logger
}

// Healthz reports process liveness.
func (h *pageHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Page renders the current document.
func (h *pageHandlers) Page(w http.ResponseWriter, _ *http.Request) {
	h.renderPage(w)
}

// Event feeds one interaction into the controller and returns the
// re-rendered document. Form fields:
//
//	type=click    selector=<css selector>
//	type=keydown  key=<Escape|ArrowLeft|ArrowRight|...>
//	type=input    field=<form field name> value=<text>
func (h *pageHandlers) Event(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", "could not parse form payload")
		return
	}

	switch r.PostFormValue("type") {
	case "click":
		selector := r.PostFormValue("selector")
		if selector == "" {
			writeError(w, http.StatusBadRequest, "missing_selector", "click events require a selector")
			return
		}
		h.controller.Click(selector)
	case "keydown":
		key := r.PostFormValue("key")
		if key == "" {
			writeError(w, http.StatusBadRequest, "missing_key", "keydown events require a key")
			return
		}
		h.controller.Keydown(key)
	case "input":
		if err := h.controller.SetFormField(r.PostFormValue("field"), r.PostFormValue("value")); err != nil {
			writeError(w, http.StatusBadRequest, "unknown_field", err.Error())
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "unknown_event", "event type must be click, keydown or input")
		return
	}

	h.renderPage(w)
}

func (h *pageHandlers) renderPage(w http.ResponseWriter) {
	markup, err := h.controller.HTML()
	if err != nil {
		h.logger.Error("page render failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render_failed", "could not render the page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(markup))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
