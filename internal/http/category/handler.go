package category

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/validator"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type createCategoryRequest struct {
	Name string        `json:"name" validate:"required,notblank,max=80"`
	Type category.Type `json:"type" validate:"required,oneof=income expense"`
}

type categoryResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Type      category.Type `json:"type"`
	Global    bool          `json:"global"`
	CreatedAt time.Time     `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	categories, err := h.svc.List(r.Context(), owner)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, fmt.Errorf("%w: %w", respond.ErrBadRequest, err))
		return
	}

	if err := validator.Validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		Owner: owner,
		Name:  req.Name,
		Type:  req.Type,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Global:    c.OwnerID == nil,
		CreatedAt: c.CreatedAt,
	}
}
