package order

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.placeOrder)                        // POST   /api/v1/orders
		r.Get("/{id}", h.getOrder)                       // GET    /api/v1/orders/{id}
		r.Put("/{id}", h.updateOrder)                    // PUT    /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus)          // PATCH  /api/v1/orders/{id}/status
		r.Delete("/{id}", h.deleteOrder)                 // DELETE /api/v1/orders/{id}
		r.Get("/delivery/{date}", h.listDeliveryOrders)  // GET    /api/v1/orders/delivery/2026-09-01?route_id=...
		r.Get("/client/{client_id}", h.listClientOrders) // GET    /api/v1/orders/client/{client_id}
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateOrder(r.Context(), id, req)
	if err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "order deleted"})
}

func (h *Handler) listDeliveryOrders(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	routeID := r.URL.Query().Get("route_id")
	orders, err := h.service.ListDeliveryOrders(r.Context(), date, routeID)
	if err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listClientOrders(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "client_id")
	orders, err := h.service.ListClientOrders(r.Context(), clientID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func statusForError(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "cannot transition"), strings.Contains(msg, "cannot edit"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"),
		strings.Contains(msg, "at least one"), strings.Contains(msg, "must be"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
