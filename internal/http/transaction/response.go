package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID         `json:"id"`
	Amount      string            `json:"amount"`
	Type        transaction.Type  `json:"type"`
	Description string            `json:"description"`
	Date        respond.Date      `json:"date"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Category    *categoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		Amount:      respond.Money(tx.Amount),
		Type:        tx.Type,
		Description: tx.Description,
		Date:        respond.NewDate(tx.Date),
		CategoryID:  tx.CategoryID,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}

	if tx.Category != nil {
		resp.Category = &categoryResponse{
			ID:   tx.Category.ID,
			Name: tx.Category.Name,
		}
	}

	return resp
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
