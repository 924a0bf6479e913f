package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/chorale/internal/core/ports"
	"github.com/ewilliams-labs/chorale/internal/core/services"
	"github.com/ewilliams-labs/chorale/internal/worker"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc     *services.Finder
	history ports.HistoryRepository
	pool    *worker.Pool
	router  *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. history and
// pool may be nil when persistence is not configured.
func NewHandler(svc *services.Finder, history ports.HistoryRepository, pool *worker.Pool) *Handler {
	h := &Handler{
		svc:     svc,
		history: history,
		pool:    pool,
		router:  http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /search", h.Search)
	h.router.HandleFunc("GET /history", h.History)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Chorale is live 🎶"})
}
