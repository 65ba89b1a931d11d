package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("category not found")

// Type tells whether a category is meant for income or expense transactions.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Category groups transactions and goals. A category without an owner is global and
// visible to everyone.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      Type
	OwnerID   *uuid.UUID
	CreatedAt time.Time
}

// AccessibleBy reports whether owner may attach this category to their records.
func (c *Category) AccessibleBy(owner uuid.UUID) bool {
	return c.OwnerID == nil || *c.OwnerID == owner
}
