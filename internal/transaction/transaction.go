package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/category"
)

var (
	ErrNotFound              = errors.New("transaction not found")
	ErrCategoryNotAccessible = errors.New("category not accessible")
	ErrNegativeAmount        = errors.New("amount must not be negative")
	ErrInvalidType           = errors.New("type must be income or expense")
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense movement in the domestic currency.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Amount      decimal.Decimal
	Type        Type
	Description string
	Date        time.Time
	CategoryID  *uuid.UUID
	Category    *category.Category // Loaded via JOIN
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}
