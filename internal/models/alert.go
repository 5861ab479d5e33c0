package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertBudgetExceeded    AlertType = "budget_exceeded"
	AlertBudgetWarning     AlertType = "budget_warning"
	AlertGoalAchieved      AlertType = "goal_achieved"
	AlertGoalMilestone     AlertType = "goal_milestone"
	AlertLowBalance        AlertType = "low_balance"
	AlertNegativeBalance   AlertType = "negative_balance"
	AlertNoSavings         AlertType = "no_savings"
	AlertLowSavingsRate    AlertType = "low_savings_rate"
	AlertExpenseTrend      AlertType = "expense_trend"
	AlertNoBudget          AlertType = "no_budget"
	AlertNoSavingsGoals    AlertType = "no_savings_goals"
	AlertNoActivity        AlertType = "no_activity"
	AlertOverspending      AlertType = "spending_more_than_income"
	AlertHighCategorySpend AlertType = "high_category_spending"
	AlertGoodSavingsRate   AlertType = "good_savings_rate"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert is a generated notification about the user's financial status.
// RelatedID is a weak reference to the budget or goal that triggered it;
// it is informational only and never dereferenced by consumers.
type Alert struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	Type      AlertType  `db:"type"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	Severity  Severity   `db:"severity"`
	IsRead    bool       `db:"is_read"`
	RelatedID *uuid.UUID `db:"related_id"`
	CreatedAt time.Time  `db:"created_at"`
}

// AlertFilter selects alerts for bulk deletion. Zero-value fields are
// ignored; set fields are combined with AND.
type AlertFilter struct {
	Types         []AlertType
	Severities    []Severity
	RelatedID     *uuid.UUID
	CreatedBefore *time.Time
	UnreadOnly    bool
}
