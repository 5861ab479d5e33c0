package service

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

const (
	// patternWindowDays is the lookback for spending pattern analysis.
	patternWindowDays = 30

	// categorySharePct flags a single category dominating total expenses.
	categorySharePct = 40.0

	// goodSavingsRatePct earns a positive-reinforcement alert.
	goodSavingsRatePct = 20.0
)

// evaluateSpendingPattern analyzes the trailing 30 days of activity. An
// empty window short-circuits with a no_activity alert; otherwise the
// overspending, dominant-category, and good-savings checks all run.
func (s *AlertService) evaluateSpendingPattern(ctx context.Context, userID uuid.UUID) error {
	now := s.now()
	from := now.AddDate(0, 0, -patternWindowDays)

	transactions, err := s.transactions.ListByUser(ctx, userID, &from, nil, "")
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	if len(transactions) == 0 {
		s.createAlert(ctx, userID, alertDraft{
			Type:     models.AlertNoActivity,
			Title:    "No Recent Activity",
			Message:  "You haven't recorded any transactions in the last 30 days.",
			Severity: models.SeverityLow,
		})
		return nil
	}

	income, expenses := sumByType(transactions)

	if expenses > income && income > 0 {
		s.createAlert(ctx, userID, alertDraft{
			Type:     models.AlertOverspending,
			Title:    "Spending More Than You Earn",
			Message:  fmt.Sprintf("Over the last 30 days you spent %.2f against %.2f of income.", expenses, income),
			Severity: models.SeverityHigh,
		})
	}

	if topCategory, topAmount := dominantCategory(transactions); expenses > 0 && topAmount/expenses*100 > categorySharePct {
		share := topAmount / expenses * 100
		s.createAlert(ctx, userID, alertDraft{
			Type:     models.AlertHighCategorySpend,
			Title:    "High Category Spending",
			Message:  fmt.Sprintf("%.0f%% of your spending in the last 30 days went to %s.", share, topCategory),
			Severity: models.SeverityMedium,
		})
	}

	if balance := income - expenses; income > 0 && balance > 0 {
		if rate := balance / income * 100; rate > goodSavingsRatePct {
			s.createAlert(ctx, userID, alertDraft{
				Type:     models.AlertGoodSavingsRate,
				Title:    "Great Savings Rate",
				Message:  fmt.Sprintf("You saved %.0f%% of your income over the last 30 days. Keep it up!", rate),
				Severity: models.SeverityLow,
			})
		}
	}

	return nil
}

// dominantCategory returns the expense category with the largest total.
func dominantCategory(transactions []models.Transaction) (string, float64) {
	totals := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Type == models.TransactionExpense {
			totals[tx.Category] += tx.Amount
		}
	}

	var topCategory string
	var topAmount float64
	for category, amount := range totals {
		if amount > topAmount {
			topCategory = category
			topAmount = amount
		}
	}
	return topCategory, topAmount
}
