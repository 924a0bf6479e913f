package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ewilliams-labs/chorale/internal/worker"
)

type searchRequest struct {
	Instruction string `json:"instruction"`
}

// Search handles POST /search. Lookup failures never surface here: the
// service's fallback contract guarantees a populated report, so the only
// client-visible errors are malformed requests.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		writeError(w, http.StatusBadRequest, "instruction is required")
		return
	}

	report := h.svc.Process(r.Context(), req.Instruction)

	if h.pool != nil {
		h.pool.Submit(worker.Job{Report: report})
	}

	writeJSON(w, http.StatusOK, report)
}
