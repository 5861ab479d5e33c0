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

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *models.SavingsGoal) error {
	query := squirrel.Insert("savings_goals").
		Columns("id", "user_id", "title", "target_amount", "current_amount", "deadline", "is_completed", "created_at").
		Values(g.ID, g.UserID, g.Title, g.TargetAmount, g.CurrentAmount, g.Deadline, g.IsCompleted, g.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.SavingsGoal, error) {
	query := squirrel.Select("id", "user_id", "title", "target_amount", "current_amount", "deadline", "is_completed", "created_at").
		From("savings_goals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var g models.SavingsGoal
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.IsCompleted, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &g, nil
}

// ListIncomplete returns the goals the alert engine still evaluates.
// Completed goals are filtered out here, which is what makes the
// goal_achieved alert fire exactly once per goal.
func (r *GoalRepository) ListIncomplete(ctx context.Context, userID uuid.UUID) ([]models.SavingsGoal, error) {
	query := squirrel.Select("id", "user_id", "title", "target_amount", "current_amount", "deadline", "is_completed", "created_at").
		From("savings_goals").
		Where(squirrel.Eq{"user_id": userID, "is_completed": false}).
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

	var goals []models.SavingsGoal
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.IsCompleted, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, g *models.SavingsGoal) error {
	query := squirrel.Update("savings_goals").
		Set("title", g.Title).
		Set("target_amount", g.TargetAmount).
		Set("current_amount", g.CurrentAmount).
		Set("deadline", g.Deadline).
		Where(squirrel.Eq{"id": g.ID, "user_id": g.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// AddProgress increments the saved amount on a goal.
func (r *GoalRepository) AddProgress(ctx context.Context, userID, id uuid.UUID, amount float64) error {
	query := squirrel.Update("savings_goals").
		Set("current_amount", squirrel.Expr("current_amount + ?", amount)).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// MarkCompleted flips the completion flag. The alert engine calls this when
// it observes current_amount crossing target_amount.
func (r *GoalRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Update("savings_goals").
		Set("is_completed", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("savings_goals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
