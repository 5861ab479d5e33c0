package service

import (
	"context"
	"time"

	"fintrack/internal/models"
	"fintrack/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertService is the rules engine that inspects one user's transactions,
// budgets and savings goals and synthesizes alerts about their financial
// status. It only ever writes to the alerts collection (plus the goal
// completion flag) and is safe to re-run: the dedup window makes repeated
// invocations over unchanged data no-ops.
type AlertService struct {
	transactions TransactionStore
	budgets      BudgetStore
	goals        GoalStore
	alerts       AlertStore
	cfg          config.AlertsConfig
	logger       *zap.Logger
	now          func() time.Time
}

func NewAlertService(
	transactions TransactionStore,
	budgets BudgetStore,
	goals GoalStore,
	alerts AlertStore,
	cfg config.AlertsConfig,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
		alerts:       alerts,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the engine's time source. Tests use it to pin "now".
func (s *AlertService) WithClock(now func() time.Time) *AlertService {
	s.now = now
	return s
}

type alertPass struct {
	name string
	run  func(ctx context.Context, userID uuid.UUID) error
}

// GenerateAlerts runs the reclaimer and every heuristic pass for one user.
// Passes are fault-isolated: a failing pass is logged and skipped, never
// letting one heuristic's error block the others. Callers observe results
// by re-querying the alert list.
func (s *AlertService) GenerateAlerts(ctx context.Context, userID uuid.UUID) {
	passes := []alertPass{
		{"reclaim_outdated", s.reclaimOutdated},
		{"spending_pattern", s.evaluateSpendingPattern},
		{"budgets", s.evaluateBudgets},
		{"savings_goals", s.evaluateSavingsGoals},
		{"balance", s.evaluateBalance},
		{"savings_rate", s.evaluateSavingsRate},
		{"financial_health", s.evaluateFinancialHealth},
	}

	for _, pass := range passes {
		if err := pass.run(ctx, userID); err != nil {
			s.logger.Warn("alert pass failed",
				zap.String("pass", pass.name),
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}
}

type alertDraft struct {
	Type      models.AlertType
	Title     string
	Message   string
	Severity  models.Severity
	RelatedID *uuid.UUID
}

// createAlert persists a new alert unless an alert with the same
// (user, type, relatedID) was already created within the dedup window.
// Failures are logged and swallowed so a heuristic can keep emitting its
// remaining candidates.
func (s *AlertService) createAlert(ctx context.Context, userID uuid.UUID, d alertDraft) {
	now := s.now()

	existing, err := s.alerts.FindRecent(ctx, userID, d.Type, d.RelatedID, now.Add(-s.cfg.DedupWindow))
	if err != nil {
		s.logger.Error("alert dedup lookup failed",
			zap.String("type", string(d.Type)),
			zap.Error(err),
		)
		return
	}
	if existing != nil {
		return
	}

	alert := &models.Alert{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      d.Type,
		Title:     d.Title,
		Message:   d.Message,
		Severity:  d.Severity,
		IsRead:    false,
		RelatedID: d.RelatedID,
		CreatedAt: now,
	}
	if err := s.alerts.Insert(ctx, alert); err != nil {
		s.logger.Error("alert insert failed",
			zap.String("type", string(d.Type)),
			zap.Error(err),
		)
	}
}

// monthTransactions lists the user's transactions for the calendar month
// containing now.
func (s *AlertService) monthTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	from := monthStart(s.now())
	return s.transactions.ListByUser(ctx, userID, &from, nil, "")
}

// monthTotals sums the user's income and expenses for the calendar month
// containing now.
func (s *AlertService) monthTotals(ctx context.Context, userID uuid.UUID) (income, expenses float64, err error) {
	transactions, err := s.monthTransactions(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	income, expenses = sumByType(transactions)
	return income, expenses, nil
}

func sumByType(transactions []models.Transaction) (income, expenses float64) {
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionIncome:
			income += tx.Amount
		case models.TransactionExpense:
			expenses += tx.Amount
		}
	}
	return income, expenses
}
