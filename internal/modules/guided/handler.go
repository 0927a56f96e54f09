package guided

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the guided flow to the chat transport as a webhook
// surface: one endpoint to start, one to feed messages.
type Handler struct{ flow *Flow }

func NewHandler(flow *Flow) *Handler { return &Handler{flow: flow} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/chat", func(r chi.Router) {
		r.Post("/start", h.start)     // POST /api/v1/chat/start
		r.Post("/message", h.message) // POST /api/v1/chat/message
	})
}

type startRequest struct {
	UserID int64 `json:"user_id"`
}

type messageRequest struct {
	UserID      int64  `json:"user_id"`
	Text        string `json:"text"`
	ImageFileID string `json:"image_file_id,omitempty"`
	Confirm     bool   `json:"confirm,omitempty"`
	Cancel      bool   `json:"cancel,omitempty"`
}

type replyResponse struct {
	Prompt    string `json:"prompt"`
	Expect    string `json:"expect"`
	Done      bool   `json:"done"`
	Outcome   string `json:"outcome,omitempty"`
	ProductID string `json:"product_id,omitempty"`
}

func toResponse(reply Reply) replyResponse {
	out := replyResponse{
		Prompt: reply.Prompt,
		Expect: reply.Expect.String(),
		Done:   reply.Done,
	}
	if reply.Done {
		out.Outcome = reply.Outcome.String()
	}
	if reply.Outcome == OutcomeSaved {
		out.ProductID = reply.ProductID.String()
	}
	return out
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	reply, err := h.flow.Start(r.Context(), req.UserID)
	if errors.Is(err, ErrNotOwner) {
		respond(w, http.StatusForbidden, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	respond(w, http.StatusOK, toResponse(reply))
}

func (h *Handler) message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	reply, err := h.flow.Handle(r.Context(), req.UserID, Input{
		Text:        req.Text,
		ImageFileID: req.ImageFileID,
		Confirm:     req.Confirm,
		Cancel:      req.Cancel,
	})
	if errors.Is(err, ErrNoSession) {
		respond(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
		return
	}
	respond(w, http.StatusOK, toResponse(reply))
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
