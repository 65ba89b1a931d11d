package goal

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/validator"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/achieved", h.listAchieved)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/progress", h.updateProgress)
	r.Delete("/{id}", h.delete)
}

type createGoalRequest struct {
	Name          string           `json:"name" validate:"required,notblank,max=120"`
	Description   string           `json:"description" validate:"max=500"`
	TargetAmount  decimal.Decimal  `json:"target_amount" validate:"gt=0"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty" validate:"omitnil,gte=0"`
	StartDate     *respond.Date    `json:"start_date,omitempty"`
	EndDate       *respond.Date    `json:"end_date,omitempty"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
}

type updateGoalRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitnil,notblank,max=120"`
	Description   *string          `json:"description,omitempty" validate:"omitnil,max=500"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty" validate:"omitnil,gt=0"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty" validate:"omitnil,gte=0"`
	StartDate     *respond.Date    `json:"start_date,omitempty"`
	EndDate       *respond.Date    `json:"end_date,omitempty"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
}

type progressRequest struct {
	CurrentAmount decimal.Decimal `json:"current_amount" validate:"gte=0"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", respond.ErrBadRequest, err)
	}

	return validator.Validate.Struct(v)
}

func goalID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", respond.ErrBadRequest)
	}

	return id, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	var req createGoalRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateParams{
		Owner:         owner,
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		StartDate:     respond.DatePtr(req.StartDate),
		EndDate:       respond.DatePtr(req.EndDate),
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	goals, err := h.svc.List(r.Context(), owner)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(goals))
}

func (h *Handler) listAchieved(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	goals, err := h.svc.ListAchieved(r.Context(), owner)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(goals))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	id, err := goalID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	g, err := h.svc.Get(r.Context(), owner, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	id, err := goalID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateGoalRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	g, err := h.svc.Get(r.Context(), owner, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Name != nil {
		g.Name = *req.Name
	}

	if req.Description != nil {
		g.Description = *req.Description
	}

	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
	}

	if req.CurrentAmount != nil {
		g.CurrentAmount = *req.CurrentAmount
	}

	if req.StartDate != nil {
		g.StartDate = req.StartDate.Time
	}

	if req.EndDate != nil {
		g.EndDate = respond.DatePtr(req.EndDate)
	}

	if req.CategoryID != nil {
		g.CategoryID = req.CategoryID
	}

	if err := h.svc.Update(r.Context(), g); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) updateProgress(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	id, err := goalID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req progressRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	g, err := h.svc.UpdateProgress(r.Context(), owner, id, req.CurrentAmount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	id, err := goalID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), owner, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
