package models

import (
	"time"

	"github.com/google/uuid"
)

type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// DefaultAlertThreshold is the percentage of a budget at which a warning
// fires when the caller does not specify a threshold.
const DefaultAlertThreshold = 80.0

type Budget struct {
	ID             uuid.UUID    `db:"id"`
	UserID         uuid.UUID    `db:"user_id"`
	Category       string       `db:"category"`
	Amount         float64      `db:"amount"`
	Period         BudgetPeriod `db:"period"`
	StartDate      time.Time    `db:"start_date"`
	IsActive       bool         `db:"is_active"`
	AlertThreshold float64      `db:"alert_threshold"`
	CreatedAt      time.Time    `db:"created_at"`
}
