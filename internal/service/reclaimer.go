package service

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// balanceRecoveredAt is the current-month balance at which unread balance
// alerts are considered resolved.
const balanceRecoveredAt = 100.0

// reclaimOutdated deletes alerts that are no longer factually true or have
// aged out. Only unread alerts are touched: once a user acknowledges an
// alert it becomes history and is preserved. Runs before the heuristics so
// a recovered condition cannot leave a contradictory alert behind.
func (s *AlertService) reclaimOutdated(ctx context.Context, userID uuid.UUID) error {
	now := s.now()

	// Balance alerts whose condition resolved.
	income, expenses, err := s.monthTotals(ctx, userID)
	if err != nil {
		return fmt.Errorf("reclaim balance alerts: %w", err)
	}
	if income-expenses >= balanceRecoveredAt {
		err := s.alerts.DeleteMatching(ctx, userID, models.AlertFilter{
			Types:      []models.AlertType{models.AlertLowBalance, models.AlertNegativeBalance},
			UnreadOnly: true,
		})
		if err != nil {
			return fmt.Errorf("reclaim balance alerts: %w", err)
		}
	}

	// Budget alerts left over from a previous budget period.
	budgets, err := s.budgets.ListActive(ctx, userID)
	if err != nil {
		return fmt.Errorf("reclaim budget alerts: %w", err)
	}
	for _, budget := range budgets {
		periodStart := BudgetPeriodStart(budget, now)
		err := s.alerts.DeleteMatching(ctx, userID, models.AlertFilter{
			Types:         []models.AlertType{models.AlertBudgetExceeded, models.AlertBudgetWarning},
			RelatedID:     &budget.ID,
			CreatedBefore: &periodStart,
			UnreadOnly:    true,
		})
		if err != nil {
			return fmt.Errorf("reclaim budget alerts: %w", err)
		}
	}

	// General staleness sweep. High-severity alerts are never auto-expired;
	// they represent urgent conditions that stay relevant.
	staleBefore := now.Add(-s.cfg.StaleAfter)
	err = s.alerts.DeleteMatching(ctx, userID, models.AlertFilter{
		Severities:    []models.Severity{models.SeverityLow, models.SeverityMedium},
		CreatedBefore: &staleBefore,
		UnreadOnly:    true,
	})
	if err != nil {
		return fmt.Errorf("reclaim stale alerts: %w", err)
	}

	return nil
}
