package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectGoalColumns = `
	g.id, g.owner_id, g.name, g.description, g.target_amount, g.current_amount,
	g.start_date, g.end_date, g.achieved, g.category_id, c.name, c.type, c.owner_id,
	g.created_at, g.updated_at
	FROM goals g
	LEFT JOIN categories c ON g.category_id = c.id
`

func scanGoal(s scanner) (*goal.Goal, error) {
	var (
		g        goal.Goal
		catName  sql.NullString
		catType  sql.NullString
		catOwner *uuid.UUID
	)

	if err := s.Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.Description, &g.TargetAmount, &g.CurrentAmount,
		&g.StartDate, &g.EndDate, &g.Achieved, &g.CategoryID, &catName, &catType, &catOwner,
		&g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if g.CategoryID != nil && catName.Valid {
		g.Category = &category.Category{
			ID:      *g.CategoryID,
			Name:    catName.String,
			Type:    category.Type(catType.String),
			OwnerID: catOwner,
		}
	}

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (owner_id, name, description, target_amount, current_amount,
			start_date, end_date, achieved, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.OwnerID,
		g.Name,
		g.Description,
		g.TargetAmount,
		g.CurrentAmount,
		g.StartDate,
		g.EndDate,
		g.Achieved,
		g.CategoryID,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, owner, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` WHERE g.id = $1 AND g.owner_id = $2`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, filter goal.ListFilter) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` WHERE g.owner_id = $1`
	args := []any{filter.Owner}

	if filter.Achieved != nil {
		args = append(args, *filter.Achieved)
		query += fmt.Sprintf(" AND g.achieved = $%d", len(args))
	}

	query += " ORDER BY g.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, description = $2, target_amount = $3, current_amount = $4,
			start_date = $5, end_date = $6, achieved = $7, category_id = $8, updated_at = NOW()
		WHERE id = $9 AND owner_id = $10
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.Name,
		g.Description,
		g.TargetAmount,
		g.CurrentAmount,
		g.StartDate,
		g.EndDate,
		g.Achieved,
		g.CategoryID,
		g.ID,
		g.OwnerID,
	).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goal.ErrNotFound
		}

		return fmt.Errorf("updating goal: %w", err)
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, owner, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
