// Package rest exposes the skill over HTTP.
package rest

import (
	"context"
	"net/http"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
	"github.com/ewilliams-labs/blendvoice/internal/telemetry"
)

// TurnHandler answers one voice turn.
type TurnHandler interface {
	Handle(ctx context.Context, req domain.Request) domain.Response
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	skill   TurnHandler
	sink    ports.Telemetry
	metrics http.Handler
	router  *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
// sink is attached to every turn's context; metrics may be nil.
func NewHandler(skill TurnHandler, sink ports.Telemetry, metrics http.Handler) *Handler {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	h := &Handler{
		skill:   skill,
		sink:    sink,
		metrics: metrics,
		router:  http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /turns", h.Turn)
	if h.metrics != nil {
		h.router.Handle("GET /metrics", h.metrics)
	}
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Blend voice is live"})
}
