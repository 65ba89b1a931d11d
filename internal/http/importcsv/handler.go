package importcsv

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
	"github.com/MrJamesThe3rd/finsight/internal/validator"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	rules     *matching.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, rules *matching.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		rules:     rules,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Amount      string           `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Date        respond.Date     `json:"date"`
	CategoryID  *uuid.UUID       `json:"category_id"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

type createParamsDTO struct {
	Amount      decimal.Decimal  `json:"amount" validate:"gte=0"`
	Type        transaction.Type `json:"type" validate:"required,oneof=income expense"`
	Description string           `json:"description" validate:"max=255"`
	Date        respond.Date     `json:"date" validate:"required"`
}

type conflictDTO struct {
	Incoming createParamsDTO     `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params" validate:"required,min=1,dive"`
}

// importCSV parses an uploaded statement, applies the owner's category rules and stores
// its rows. When some rows already exist nothing is stored and the client gets a 409
// with the split to confirm.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, r, fmt.Errorf("%w: failed to parse form: %w", respond.ErrBadRequest, err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, fmt.Errorf("%w: file field is required", respond.ErrBadRequest))
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.Bank(r.FormValue("bank")), file)
	if err != nil {
		respond.Error(w, r, fmt.Errorf("%w: %w", respond.ErrBadRequest, err))
		return
	}

	if err := h.rules.Categorize(r.Context(), owner, params); err != nil {
		respond.Error(w, r, err)
		return
	}

	result, err := h.txSvc.ImportBatch(r.Context(), owner, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toTxResponse(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

// confirmImport stores the rows the client kept after resolving conflicts.
func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, fmt.Errorf("%w: invalid request body: %w", respond.ErrBadRequest, err))
		return
	}

	if err := validator.Validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, transaction.CreateParams{
			Owner:       owner,
			Amount:      p.Amount,
			Type:        p.Type,
			Description: p.Description,
			Date:        p.Date.Time,
		})
	}

	if err := h.rules.Categorize(r.Context(), owner, params); err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), owner, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTxResponse(tx))
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      respond.Money(tx.Amount),
		Type:        tx.Type,
		Description: tx.Description,
		Date:        respond.NewDate(tx.Date),
		CategoryID:  tx.CategoryID,
	}
}

func toParamsDTO(p transaction.CreateParams) createParamsDTO {
	return createParamsDTO{
		Amount:      p.Amount,
		Type:        p.Type,
		Description: p.Description,
		Date:        respond.NewDate(p.Date),
	}
}
