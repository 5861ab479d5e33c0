package service

import (
	"context"
	"fmt"
	"math"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// evaluateBudgets checks every active budget's spending against its limit
// for the current period. Exceeded takes priority over warning; the two
// never fire together for one budget in one pass.
func (s *AlertService) evaluateBudgets(ctx context.Context, userID uuid.UUID) error {
	now := s.now()

	budgets, err := s.budgets.ListActive(ctx, userID)
	if err != nil {
		return fmt.Errorf("list active budgets: %w", err)
	}

	for _, budget := range budgets {
		periodStart := BudgetPeriodStart(budget, now)
		transactions, err := s.transactions.ListByUser(ctx, userID, &periodStart, nil, budget.Category)
		if err != nil {
			return fmt.Errorf("list transactions for budget %s: %w", budget.ID, err)
		}

		var spent float64
		for _, tx := range transactions {
			if tx.Type == models.TransactionExpense {
				spent += tx.Amount
			}
		}

		percentUsed := spent / budget.Amount * 100
		budgetID := budget.ID

		if spent > budget.Amount {
			s.createAlert(ctx, userID, alertDraft{
				Type:     models.AlertBudgetExceeded,
				Title:    "Budget Exceeded",
				Message:  fmt.Sprintf("You've spent %.2f on %s, exceeding your budget of %.2f.", spent, budget.Category, budget.Amount),
				Severity: models.SeverityHigh,
				RelatedID: &budgetID,
			})
		} else if percentUsed >= budget.AlertThreshold && percentUsed < 100 {
			s.createAlert(ctx, userID, alertDraft{
				Type:     models.AlertBudgetWarning,
				Title:    "Budget Warning",
				Message:  fmt.Sprintf("You've used %d%% of your %s budget.", int(math.Round(percentUsed)), budget.Category),
				Severity: models.SeverityMedium,
				RelatedID: &budgetID,
			})
		}
	}

	return nil
}
