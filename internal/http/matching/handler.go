package matching

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
	"github.com/MrJamesThe3rd/finsight/internal/validator"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.learn)
	r.Get("/suggest", h.suggest)
}

type learnRequest struct {
	Pattern    string    `json:"pattern" validate:"required,notblank,max=120"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}

type ruleResponse struct {
	ID         uuid.UUID `json:"id"`
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type suggestResponse struct {
	Description string     `json:"description"`
	Type        string     `json:"type"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	rules, err := h.svc.List(r.Context(), owner)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toResponse(rule)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, fmt.Errorf("%w: %w", respond.ErrBadRequest, err))
		return
	}

	if err := validator.Validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	rule, err := h.svc.Learn(r.Context(), owner, req.Pattern, req.CategoryID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rule))
}

// suggest previews the category a transaction would get on import. The type defaults
// to expense.
func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	description := r.URL.Query().Get("description")
	if description == "" {
		respond.Error(w, r, fmt.Errorf("%w: description query parameter is required", respond.ErrBadRequest))
		return
	}

	t := transaction.TypeExpense
	if raw := r.URL.Query().Get("type"); raw != "" {
		t = transaction.Type(raw)
		if !t.Valid() {
			respond.Error(w, r, transaction.ErrInvalidType)
			return
		}
	}

	id, err := h.svc.Suggest(r.Context(), owner, description, t)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{
		Description: description,
		Type:        string(t),
		CategoryID:  id,
	})
}

func toResponse(rule *matching.Rule) ruleResponse {
	return ruleResponse{
		ID:         rule.ID,
		Pattern:    rule.Pattern,
		CategoryID: rule.CategoryID,
		CreatedAt:  rule.CreatedAt,
	}
}
