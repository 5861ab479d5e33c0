package service

import (
	"time"

	"fintrack/internal/models"
)

// BudgetPeriodStart returns the timestamp from which a budget's spending is
// accumulated for its current cycle.
//
// Weekly budgets reset on the most recent Sunday at midnight; monthly
// budgets on the first of the current month. Any other period, yearly
// included, falls back to the budget's start date (or now when unset).
// Yearly budgets therefore never get a true period boundary; that gap is
// deliberate, see DESIGN.md.
func BudgetPeriodStart(b models.Budget, now time.Time) time.Time {
	switch b.Period {
	case models.PeriodWeekly:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	case models.PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		if !b.StartDate.IsZero() {
			return b.StartDate
		}
		return now
	}
}

// monthStart returns midnight on the first day of t's calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
