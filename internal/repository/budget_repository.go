package repository

import (
	"context"
	"errors"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	query := squirrel.Insert("budgets").
		Columns("id", "user_id", "category", "amount", "period", "start_date", "is_active", "alert_threshold", "created_at").
		Values(b.ID, b.UserID, b.Category, b.Amount, b.Period, b.StartDate, b.IsActive, b.AlertThreshold, b.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	query := squirrel.Select("id", "user_id", "category", "amount", "period", "start_date", "is_active", "alert_threshold", "created_at").
		From("budgets").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var b models.Budget
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Period, &b.StartDate, &b.IsActive, &b.AlertThreshold, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &b, nil
}

// ListActive returns the budgets considered by the alert engine. Inactive
// (soft-deleted) budgets are excluded.
func (r *BudgetRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	query := squirrel.Select("id", "user_id", "category", "amount", "period", "start_date", "is_active", "alert_threshold", "created_at").
		From("budgets").
		Where(squirrel.Eq{"user_id": userID, "is_active": true}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Period, &b.StartDate, &b.IsActive, &b.AlertThreshold, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, b *models.Budget) error {
	query := squirrel.Update("budgets").
		Set("category", b.Category).
		Set("amount", b.Amount).
		Set("period", b.Period).
		Set("start_date", b.StartDate).
		Set("alert_threshold", b.AlertThreshold).
		Where(squirrel.Eq{"id": b.ID, "user_id": b.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Deactivate soft-deletes a budget. Rows are never removed so historical
// alerts keep a resolvable reference.
func (r *BudgetRepository) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Update("budgets").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
