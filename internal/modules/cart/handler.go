package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes cart HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.getCart)       // GET    /api/v1/cart?user_id=123
		r.Post("/items", h.addItem) // POST   /api/v1/cart/items
		r.Delete("/", h.clearCart)  // DELETE /api/v1/cart?user_id=123
	})
}

type addItemRequest struct {
	UserID    int64  `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "user_id query parameter is required"})
		return
	}
	items, err := h.service.GetCartItems(r.Context(), userID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	out := make(map[string]int, len(items))
	for id, qty := range items {
		out[id.String()] = qty
	}
	respond(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
		return
	}
	qty, err := h.service.AddToCart(r.Context(), req.UserID, productID, req.Quantity)
	if errors.Is(err, ErrZeroQuantity) {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	respond(w, http.StatusOK, map[string]int{"quantity": qty})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "user_id query parameter is required"})
		return
	}
	if _, err := h.service.ClearCart(r.Context(), userID); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
