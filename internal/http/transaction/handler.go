package transaction

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
	"github.com/MrJamesThe3rd/finsight/internal/validator"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
}

type createTransactionRequest struct {
	Amount      decimal.Decimal  `json:"amount" validate:"gte=0"`
	Type        transaction.Type `json:"type" validate:"required,oneof=income expense"`
	Description string           `json:"description" validate:"max=255"`
	Date        respond.Date     `json:"date" validate:"required"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
}

type updateTransactionRequest struct {
	Description   *string           `json:"description,omitempty" validate:"omitnil,max=255"`
	Amount        *decimal.Decimal  `json:"amount,omitempty" validate:"omitnil,gte=0"`
	Type          *transaction.Type `json:"type,omitempty" validate:"omitnil,oneof=income expense"`
	Date          *respond.Date     `json:"date,omitempty"`
	CategoryID    *uuid.UUID        `json:"category_id,omitempty"`
	ClearCategory bool              `json:"clear_category,omitempty"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", respond.ErrBadRequest, err)
	}

	return validator.Validate.Struct(v)
}

func transactionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", respond.ErrBadRequest)
	}

	return id, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	var req createTransactionRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Owner:       owner,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date.Time,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())
	filter := transaction.ListFilter{Owner: owner}
	q := r.URL.Query()

	if s := q.Get("type"); s != "" {
		t := transaction.Type(s)
		if !t.Valid() {
			respond.Error(w, r, transaction.ErrInvalidType)
			return
		}

		filter.Type = &t
	}

	if s := q.Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, r, fmt.Errorf("%w: invalid category_id", respond.ErrBadRequest))
			return
		}

		filter.CategoryID = &id
	}

	var err error
	if filter.StartDate, err = dateParam(q, "start_date"); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.EndDate, err = dateParam(q, "end_date"); err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func dateParam(q url.Values, key string) (*time.Time, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", respond.ErrBadRequest, key)
	}

	return &t, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	id, err := transactionID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), owner, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	id, err := transactionID(r)
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

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	id, err := transactionID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateTransactionRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), owner, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Date != nil {
		tx.Date = req.Date.Time
	}

	if req.CategoryID != nil {
		tx.CategoryID = req.CategoryID
	}

	if req.ClearCategory {
		tx.CategoryID = nil
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}
