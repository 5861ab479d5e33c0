package service

import (
	"context"
	"fmt"
	"sort"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// expenseTrendIncreasePct is the month-over-month expense growth beyond
// which an expense trend alert fires.
const expenseTrendIncreasePct = 20.0

// evaluateFinancialHealth runs three independent checks over the trailing
// three calendar months: a month-over-month expense trend, and nudges for
// users with activity but no budgets or no savings goals. Any subset may
// fire in one pass.
func (s *AlertService) evaluateFinancialHealth(ctx context.Context, userID uuid.UUID) error {
	now := s.now()
	from := monthStart(now).AddDate(0, -2, 0)

	transactions, err := s.transactions.ListByUser(ctx, userID, &from, nil, "")
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	if months := monthlyExpenses(transactions); len(months) >= 2 {
		latest := months[len(months)-1]
		previous := months[len(months)-2]
		if previous.expenses > 0 && latest.expenses > 0 {
			increase := (latest.expenses - previous.expenses) / previous.expenses * 100
			if increase > expenseTrendIncreasePct {
				s.createAlert(ctx, userID, alertDraft{
					Type:     models.AlertExpenseTrend,
					Title:    "Spending Is Trending Up",
					Message:  fmt.Sprintf("Your expenses rose %.0f%% month over month, from %.2f to %.2f.", increase, previous.expenses, latest.expenses),
					Severity: models.SeverityMedium,
				})
			}
		}
	}

	if len(transactions) == 0 {
		return nil
	}

	budgets, err := s.budgets.ListActive(ctx, userID)
	if err != nil {
		return fmt.Errorf("list active budgets: %w", err)
	}
	if len(budgets) == 0 {
		s.createAlert(ctx, userID, alertDraft{
			Type:     models.AlertNoBudget,
			Title:    "No Budgets Set",
			Message:  "You're tracking transactions but have no active budgets. Setting one helps keep spending in check.",
			Severity: models.SeverityLow,
		})
	}

	goals, err := s.goals.ListIncomplete(ctx, userID)
	if err != nil {
		return fmt.Errorf("list incomplete goals: %w", err)
	}
	if len(goals) == 0 {
		s.createAlert(ctx, userID, alertDraft{
			Type:     models.AlertNoSavingsGoals,
			Title:    "No Savings Goals",
			Message:  "You're tracking transactions but have no savings goals. Setting one makes saving easier.",
			Severity: models.SeverityLow,
		})
	}

	return nil
}

type monthExpenses struct {
	key      int // year*12 + month, orders chronologically
	expenses float64
}

// monthlyExpenses groups expense totals by calendar month, oldest first.
// Months appear only when they contain at least one transaction.
func monthlyExpenses(transactions []models.Transaction) []monthExpenses {
	totals := make(map[int]float64)
	for _, tx := range transactions {
		key := tx.Date.Year()*12 + int(tx.Date.Month()) - 1
		if _, ok := totals[key]; !ok {
			totals[key] = 0
		}
		if tx.Type == models.TransactionExpense {
			totals[key] += tx.Amount
		}
	}

	months := make([]monthExpenses, 0, len(totals))
	for key, expenses := range totals {
		months = append(months, monthExpenses{key: key, expenses: expenses})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].key < months[j].key })
	return months
}
