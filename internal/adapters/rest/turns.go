package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/telemetry"
)

const maxTurnBytes = 1 << 20

// Turn handles POST /turns
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req domain.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTurnBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	ctx := telemetry.WithSink(r.Context(), h.sink)
	writeJSON(w, http.StatusOK, h.skill.Handle(ctx, req))
}
