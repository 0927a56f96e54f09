package owner

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes owner registry HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/owner", func(r chi.Router) {
		r.Get("/", h.getOwner)    // GET  /api/v1/owner
		r.Post("/claim", h.claim) // POST /api/v1/owner/claim
	})
}

type claimRequest struct {
	PrincipalID int64 `json:"principal_id"`
}

func (h *Handler) getOwner(w http.ResponseWriter, r *http.Request) {
	id, set, err := h.service.GetOwner(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	if !set {
		respond(w, http.StatusOK, map[string]interface{}{"owner_set": false})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"owner_set": true, "principal_id": id})
}

func (h *Handler) claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.PrincipalID == 0 {
		respond(w, http.StatusBadRequest, map[string]string{"error": "principal_id is required"})
		return
	}
	claimed, err := h.service.ClaimOwner(r.Context(), req.PrincipalID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	if !claimed {
		respond(w, http.StatusConflict, map[string]string{"error": "owner already set"})
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{"principal_id": req.PrincipalID})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
