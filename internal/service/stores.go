package service

import (
	"context"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// The alert engine reads and writes through these narrow store interfaces.
// The pgx repositories satisfy them in production; memstore satisfies them
// in tests.

type TransactionStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time, category string) ([]models.Transaction, error)
	UserIDsWithActivity(ctx context.Context, since time.Time) ([]uuid.UUID, error)
}

type BudgetStore interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]models.Budget, error)
}

type GoalStore interface {
	ListIncomplete(ctx context.Context, userID uuid.UUID) ([]models.SavingsGoal, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

type AlertStore interface {
	Insert(ctx context.Context, a *models.Alert) error
	FindRecent(ctx context.Context, userID uuid.UUID, alertType models.AlertType, relatedID *uuid.UUID, since time.Time) (*models.Alert, error)
	DeleteMatching(ctx context.Context, userID uuid.UUID, f models.AlertFilter) error
}
