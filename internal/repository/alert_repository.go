package repository

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// dedupBucketSeconds sizes the half-open time buckets backing the unique
// index on alerts. Must stay in sync with the engine's dedup window.
const dedupBucketSeconds = 1800

type AlertRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAlertRepository(db *pgxpool.Pool, logger *zap.Logger) *AlertRepository {
	return &AlertRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists an alert. The unique index on
// (user_id, type, related_id, dedup_bucket) plus ON CONFLICT DO NOTHING
// makes concurrent duplicate inserts within a bucket harmless.
func (r *AlertRepository) Insert(ctx context.Context, a *models.Alert) error {
	query := squirrel.Insert("alerts").
		Columns("id", "user_id", "type", "title", "message", "severity", "is_read", "related_id", "created_at", "dedup_bucket").
		Values(a.ID, a.UserID, a.Type, a.Title, a.Message, a.Severity, a.IsRead, a.RelatedID, a.CreatedAt, a.CreatedAt.Unix()/dedupBucketSeconds).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// FindRecent returns the newest alert matching (user, type, relatedID)
// created at or after since, or nil when there is none. It backs the
// engine's dedup lookback.
func (r *AlertRepository) FindRecent(ctx context.Context, userID uuid.UUID, alertType models.AlertType, relatedID *uuid.UUID, since time.Time) (*models.Alert, error) {
	query := squirrel.Select("id", "user_id", "type", "title", "message", "severity", "is_read", "related_id", "created_at").
		From("alerts").
		Where(squirrel.Eq{"user_id": userID, "type": alertType}).
		Where(squirrel.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	if relatedID != nil {
		query = query.Where(squirrel.Eq{"related_id": *relatedID})
	} else {
		query = query.Where("related_id IS NULL")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var a models.Alert
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.UserID, &a.Type, &a.Title, &a.Message, &a.Severity, &a.IsRead, &a.RelatedID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

// ListByUser returns the user's newest alerts, newest first.
func (r *AlertRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit uint64) ([]models.Alert, error) {
	query := squirrel.Select("id", "user_id", "type", "title", "message", "severity", "is_read", "related_id", "created_at").
		From("alerts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
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

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Type, &a.Title, &a.Message, &a.Severity, &a.IsRead, &a.RelatedID, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// DeleteMatching removes the user's alerts selected by the filter. The
// reclaimer uses it to retire alerts whose condition no longer holds.
func (r *AlertRepository) DeleteMatching(ctx context.Context, userID uuid.UUID, f models.AlertFilter) error {
	query := squirrel.Delete("alerts").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	if len(f.Types) > 0 {
		query = query.Where(squirrel.Eq{"type": f.Types})
	}
	if len(f.Severities) > 0 {
		query = query.Where(squirrel.Eq{"severity": f.Severities})
	}
	if f.RelatedID != nil {
		query = query.Where(squirrel.Eq{"related_id": *f.RelatedID})
	}
	if f.CreatedBefore != nil {
		query = query.Where(squirrel.Lt{"created_at": *f.CreatedBefore})
	}
	if f.UnreadOnly {
		query = query.Where(squirrel.Eq{"is_read": false})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AlertRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Update("alerts").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AlertRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("alerts").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
