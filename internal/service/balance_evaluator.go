package service

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

const (
	// Balance alerts only fire inside the (-500, 100) window. Balances at
	// or below -500 fall into a dead zone with no alert, reproducing the
	// product's historical behavior; see DESIGN.md before "fixing" this.
	lowBalanceCeiling = 100.0
	lowBalanceFloor   = -500.0

	// Savings rates below this percentage of income trigger a warning.
	lowSavingsRatePct = 10.0
)

// evaluateBalance alerts on a low or negative balance for the current
// calendar month. A month with no transactions at all is silent; a zero
// balance only matters once there is activity behind it.
func (s *AlertService) evaluateBalance(ctx context.Context, userID uuid.UUID) error {
	transactions, err := s.monthTransactions(ctx, userID)
	if err != nil {
		return fmt.Errorf("month transactions: %w", err)
	}
	if len(transactions) == 0 {
		return nil
	}

	income, expenses := sumByType(transactions)
	balance := income - expenses

	if balance < lowBalanceCeiling && balance > lowBalanceFloor {
		if balance < 0 {
			s.createAlert(ctx, userID, alertDraft{
				Type:     models.AlertNegativeBalance,
				Title:    "Negative Balance",
				Message:  fmt.Sprintf("Your balance this month is %.2f. Your expenses exceed your income.", balance),
				Severity: models.SeverityHigh,
			})
		} else {
			s.createAlert(ctx, userID, alertDraft{
				Type:     models.AlertLowBalance,
				Title:    "Low Balance",
				Message:  fmt.Sprintf("Your balance this month is down to %.2f.", balance),
				Severity: models.SeverityHigh,
			})
		}
	}

	return nil
}

// evaluateSavingsRate alerts when the user saves nothing or too little of
// this month's income. A rate of 10% or more is healthy and silent.
func (s *AlertService) evaluateSavingsRate(ctx context.Context, userID uuid.UUID) error {
	income, expenses, err := s.monthTotals(ctx, userID)
	if err != nil {
		return fmt.Errorf("month totals: %w", err)
	}

	if income <= 0 {
		return nil
	}

	savings := income - expenses
	if savings <= 0 {
		s.createAlert(ctx, userID, alertDraft{
			Type:     models.AlertNoSavings,
			Title:    "No Savings This Month",
			Message:  "You haven't saved anything this month. Your expenses match or exceed your income.",
			Severity: models.SeverityMedium,
		})
		return nil
	}

	rate := savings / income * 100
	if rate < lowSavingsRatePct {
		s.createAlert(ctx, userID, alertDraft{
			Type:     models.AlertLowSavingsRate,
			Title:    "Low Savings Rate",
			Message:  fmt.Sprintf("You're saving only %.1f%% of your income this month.", rate),
			Severity: models.SeverityMedium,
		})
	}

	return nil
}
