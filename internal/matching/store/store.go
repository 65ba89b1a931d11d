package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, owner uuid.UUID, description string, t category.Type) (*uuid.UUID, error) {
	query := `
		SELECT r.category_id
		FROM category_rules r
		JOIN categories c ON c.id = r.category_id
		WHERE r.owner_id = $1
		  AND c.type = $3
		  AND $2 ILIKE '%' || r.pattern || '%'
		ORDER BY LENGTH(r.pattern) DESC, r.created_at DESC
		LIMIT 1
	`

	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, query, owner, description, t).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return &id, nil
}

func (s *Store) CreateRule(ctx context.Context, r *matching.Rule) error {
	query := `
		INSERT INTO category_rules (owner_id, pattern, category_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.OwnerID, r.Pattern, r.CategoryID).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context, owner uuid.UUID) ([]*matching.Rule, error) {
	query := `
		SELECT id, owner_id, pattern, category_id, created_at
		FROM category_rules
		WHERE owner_id = $1
		ORDER BY pattern
	`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []*matching.Rule

	for rows.Next() {
		var r matching.Rule
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Pattern, &r.CategoryID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		rules = append(rules, &r)
	}

	return rules, rows.Err()
}
