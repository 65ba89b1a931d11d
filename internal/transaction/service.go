package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, owner, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, owner, id uuid.UUID) error

	BeginImport(ctx context.Context, owner uuid.UUID, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

// CategoryLookup resolves a category the owner is allowed to see.
type CategoryLookup interface {
	Get(ctx context.Context, owner, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
}

func NewService(repo Repository, categories CategoryLookup) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateParams struct {
	Owner       uuid.UUID
	Amount      decimal.Decimal
	Type        Type
	Description string
	Date        time.Time
	CategoryID  *uuid.UUID
}

type ListFilter struct {
	Owner      uuid.UUID
	Type       *Type
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := newTransaction(params)
	if err := s.validate(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	tx.Amount = tx.Amount.Round(2)
	if err := s.validate(ctx, tx); err != nil {
		return err
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, owner, id)
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, owner, id)
}

func (s *Service) validate(ctx context.Context, tx *Transaction) error {
	if tx.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if !tx.Type.Valid() {
		return ErrInvalidType
	}

	if tx.CategoryID == nil {
		tx.Category = nil
		return nil
	}

	c, err := s.categories.Get(ctx, tx.OwnerID, *tx.CategoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return ErrCategoryNotAccessible
		}

		return fmt.Errorf("looking up category: %w", err)
	}

	tx.Category = c

	return nil
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

// ImportBatch stores params unless some of them already exist for the same owner, date,
// amount, type and description. On any conflict nothing is written and the split
// between new and conflicting rows is returned for confirmation.
func (s *Service) ImportBatch(ctx context.Context, owner uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, owner, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[DuplicateKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[KeyOf(d)] = d
	}

	var (
		fresh     []CreateParams
		conflicts []Conflict
	)

	for _, p := range params {
		if existing, found := lookup[p.Key()]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		fresh = append(fresh, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: fresh, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(owner, fresh)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch stores params in one database transaction without duplicate checks.
func (s *Service) CreateBatch(ctx context.Context, owner uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, owner, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(owner, params)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

// DuplicateKey identifies an imported row regardless of its stored id.
type DuplicateKey struct {
	Date        string
	Amount      string
	Type        Type
	Description string
}

func (p CreateParams) Key() DuplicateKey {
	return DuplicateKey{
		Date:        p.Date.Format(time.DateOnly),
		Amount:      p.Amount.StringFixed(2),
		Type:        p.Type,
		Description: p.Description,
	}
}

func KeyOf(tx *Transaction) DuplicateKey {
	return DuplicateKey{
		Date:        tx.Date.Format(time.DateOnly),
		Amount:      tx.Amount.StringFixed(2),
		Type:        tx.Type,
		Description: tx.Description,
	}
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func newTransaction(p CreateParams) *Transaction {
	return &Transaction{
		OwnerID:     p.Owner,
		Amount:      p.Amount.Round(2),
		Type:        p.Type,
		Description: p.Description,
		Date:        p.Date,
		CategoryID:  p.CategoryID,
	}
}

func paramsToTransactions(owner uuid.UUID, params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		p.Owner = owner
		txs[i] = newTransaction(p)
	}

	return txs
}
