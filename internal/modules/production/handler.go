package production

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes production sheet HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/production", func(r chi.Router) {
		r.Get("/sheet", h.getSheet) // GET /api/v1/production/sheet?date=2026-09-01&route_id=...
	})
}

func (h *Handler) getSheet(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	routeID := r.URL.Query().Get("route_id")

	sheet, err := h.service.BuildSheet(r.Context(), day, routeID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sheet)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
