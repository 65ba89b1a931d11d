package currency

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/currency"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/validator"
)

type Handler struct {
	converter *currency.Converter
}

func NewHandler(converter *currency.Converter) *Handler {
	return &Handler{converter: converter}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/convert", h.convert)
	r.Get("/available", h.available)
}

type convertRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency string          `json:"from_currency" validate:"required,currencycode"`
	ToCurrency   string          `json:"to_currency" validate:"required,currencycode"`
}

type conversionResponse struct {
	OriginalAmount   string    `json:"original_amount"`
	OriginalCurrency string    `json:"original_currency"`
	ConvertedAmount  string    `json:"converted_amount"`
	TargetCurrency   string    `json:"target_currency"`
	ExchangeRate     string    `json:"exchange_rate"`
	ConversionDate   time.Time `json:"conversion_date"`
}

type availableResponse struct {
	Currencies []string `json:"currencies"`
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, fmt.Errorf("%w: %w", respond.ErrBadRequest, err))
		return
	}

	if err := validator.Validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.converter.ConvertAmount(r.Context(), req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, conversionResponse{
		OriginalAmount:   respond.Money(c.OriginalAmount),
		OriginalCurrency: c.OriginalCurrency,
		ConvertedAmount:  respond.Money(c.ConvertedAmount),
		TargetCurrency:   c.TargetCurrency,
		ExchangeRate:     c.Rate.String(),
		ConversionDate:   c.ConvertedAt,
	})
}

func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	codes, err := h.converter.Available(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, availableResponse{Currencies: codes})
}
