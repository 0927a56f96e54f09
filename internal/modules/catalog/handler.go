package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the catalog routes. Mutating routes are wrapped
// with the ownerOnly middleware.
func (h *Handler) RegisterRoutes(r *chi.Mux, ownerOnly func(http.Handler) http.Handler) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)   // GET /api/v1/products?category=Drinks
		r.Get("/{id}", h.getProduct) // GET /api/v1/products/{id}
		r.Group(func(r chi.Router) {
			r.Use(ownerOnly)
			r.Post("/", h.createProduct)         // POST   /api/v1/products
			r.Delete("/{id}", h.deleteProduct)   // DELETE /api/v1/products/{id}
			r.Post("/{id}/stock", h.adjustStock) // POST   /api/v1/products/{id}/stock
		})
	})
	r.Get("/api/v1/categories", h.listCategories)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var (
		products []*Product
		err      error
	)
	if category != "" {
		products, err = h.service.ListByCategory(r.Context(), category)
	} else {
		products, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	if products == nil {
		products = []*Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var d Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	id, err := h.service.AddProduct(r.Context(), d)
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrInvalidQuantity):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case err != nil:
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	respond(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	ok, err := h.service.SoftDelete(r.Context(), id)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	if !ok {
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adjustStockRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	qty, err := h.service.AdjustStock(r.Context(), id, req.Delta)
	switch {
	case errors.Is(err, ErrNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	case errors.Is(err, ErrInsufficientStock):
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": "insufficient stock"})
		return
	case err != nil:
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	respond(w, http.StatusOK, map[string]int{"quantity": qty})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
