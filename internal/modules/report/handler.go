package report

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler exposes the reporting query interface. Overrides live in a single
// layer shared across requests: the app is driven by one operator working one
// report at a time, and a reset endpoint clears the session.
type Handler struct {
	loader    SnapshotLoader
	overrides *OverrideLayer
	columns   *ColumnOrderStore
	packing   PackingConfig
	logger    zerolog.Logger
}

// NewHandler wires the reporting endpoints. The overrides layer is shared
// with the production sheet so corrections show up in both views.
func NewHandler(loader SnapshotLoader, overrides *OverrideLayer, columns *ColumnOrderStore, packing PackingConfig, logger zerolog.Logger) *Handler {
	if overrides == nil {
		overrides = NewOverrideLayer()
	}
	return &Handler{
		loader:    loader,
		overrides: overrides,
		columns:   columns,
		packing:   packing,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/pivot", h.getPivot)                                   // GET    /api/v1/reports/pivot?date=2026-09-01&route_id=...
		r.Get("/categories/{category}/total", h.getCategoryTotal)     // GET    /api/v1/reports/categories/donut/total?date=...
		r.Get("/categories/{category}/buckets", h.getBucketBreakdown) // GET    /api/v1/reports/categories/donut/buckets?date=...
		r.Get("/categories/{category}/packing", h.getPacking)         // GET    /api/v1/reports/categories/donut/packing?date=...
		r.Put("/overrides", h.setOverride)                            // PUT    /api/v1/reports/overrides
		r.Delete("/overrides", h.resetOverrides)                      // DELETE /api/v1/reports/overrides
		r.Get("/column-order", h.getColumnOrder)                      // GET    /api/v1/reports/column-order
		r.Put("/column-order", h.setColumnOrder)                      // PUT    /api/v1/reports/column-order
	})
}

// setOverrideRequest pins one report cell to a user-entered value. Value
// arrives as a string and is coerced; non-numeric input reads as zero.
type setOverrideRequest struct {
	RouteID string `json:"route_id"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// packingResponse pairs the category tray conversion with the per-flavor can
// conversion. The two sections use different divisors on purpose.
type packingResponse struct {
	Category string                         `json:"category"`
	Total    Totals                         `json:"total"`
	Trays    Packing                        `json:"trays"`
	Flavors  map[FlavorBucket]flavorPacking `json:"flavors"`
}

type flavorPacking struct {
	Quantity int     `json:"quantity"`
	Cans     Packing `json:"cans"`
}

func (h *Handler) getPivot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, s.Pivot(h.columns.Load()))
}

func (h *Handler) getCategoryTotal(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	category := chi.URLParam(r, "category")
	respond(w, http.StatusOK, s.CategoryTotal(category))
}

func (h *Handler) getBucketBreakdown(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	category := chi.URLParam(r, "category")
	respond(w, http.StatusOK, s.BucketBreakdown(category))
}

func (h *Handler) getPacking(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	category := chi.URLParam(r, "category")

	breakdown := s.BucketBreakdown(category)
	cans := s.FlavorPacking(category)
	flavors := make(map[FlavorBucket]flavorPacking, len(breakdown))
	for bucket, qty := range breakdown {
		flavors[bucket] = flavorPacking{Quantity: qty, Cans: cans[bucket]}
	}

	respond(w, http.StatusOK, packingResponse{
		Category: CanonicalCategory(category),
		Total:    s.CategoryTotal(category),
		Trays:    s.CategoryPacking(category),
		Flavors:  flavors,
	})
}

func (h *Handler) setOverride(w http.ResponseWriter, r *http.Request) {
	var req setOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Field == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "field is required"})
		return
	}
	routeID := uuid.Nil
	if req.RouteID != "" {
		var err error
		if routeID, err = uuid.Parse(req.RouteID); err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid route_id"})
			return
		}
	}
	h.overrides.Set(routeID, req.Field, req.Value)
	respond(w, http.StatusOK, map[string]string{"status": "override set"})
}

func (h *Handler) resetOverrides(w http.ResponseWriter, r *http.Request) {
	h.overrides.ResetAll()
	respond(w, http.StatusOK, map[string]string{"status": "overrides reset"})
}

func (h *Handler) getColumnOrder(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.columns.Load())
}

func (h *Handler) setColumnOrder(w http.ResponseWriter, r *http.Request) {
	var order ColumnOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.columns.Save(order); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, order)
}

// session loads the snapshot for the request's date/route filter and wraps it
// with the shared override layer.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
			return nil, false
		}
		day = parsed
	}
	routeID := r.URL.Query().Get("route_id")

	snap, err := h.loader.Load(r.Context(), day, routeID)
	if err != nil {
		h.logger.Error().Err(err).Msg("snapshot load failed")
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return NewSession(snap, h.overrides, h.packing, h.logger), true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
