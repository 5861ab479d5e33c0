package service

import (
	"context"
	"strings"
	"testing"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

func TestEvaluateFinancialHealthExpenseTrend(t *testing.T) {
	tests := []struct {
		name         string
		previous     float64
		latest       float64
		wantTrend    bool
		wantIncrease string
	}{
		{"growth above 20 percent fires", 100, 150, true, "50%"},
		{"growth at 20 percent is silent", 100, 120, false, ""},
		{"declining spending is silent", 200, 150, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := testEngine(testNow)
			userID := uuid.New()

			store.AddTransaction(expense(userID, tt.previous, "Food", testNow.AddDate(0, -1, 0)))
			store.AddTransaction(expense(userID, tt.latest, "Food", testNow.AddDate(0, 0, -2)))
			// Budget and goal present so the nudge checks stay quiet.
			store.AddBudget(models.Budget{ID: uuid.New(), UserID: userID, Category: "Food", Amount: 10000, Period: models.PeriodMonthly, IsActive: true, AlertThreshold: 80})
			store.AddGoal(models.SavingsGoal{ID: uuid.New(), UserID: userID, Title: "Fund", TargetAmount: 1000, CurrentAmount: 100})

			if err := svc.evaluateFinancialHealth(context.Background(), userID); err != nil {
				t.Fatal(err)
			}

			trends := store.AlertsOfType(models.AlertExpenseTrend)
			if !tt.wantTrend {
				if len(trends) != 0 {
					t.Fatalf("expense_trend alerts = %d, want 0", len(trends))
				}
				return
			}

			if len(trends) != 1 {
				t.Fatalf("expense_trend alerts = %d, want 1", len(trends))
			}
			msg := trends[0].Message
			if !strings.Contains(msg, tt.wantIncrease) {
				t.Errorf("message %q should contain %q", msg, tt.wantIncrease)
			}
			if !strings.Contains(msg, "100.00") || !strings.Contains(msg, "150.00") {
				t.Errorf("message %q should contain both monthly totals", msg)
			}
		})
	}
}

func TestEvaluateFinancialHealthSingleMonthNoTrend(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	store.AddTransaction(expense(userID, 300, "Food", testNow.AddDate(0, 0, -2)))
	store.AddBudget(models.Budget{ID: uuid.New(), UserID: userID, Category: "Food", Amount: 10000, Period: models.PeriodMonthly, IsActive: true, AlertThreshold: 80})
	store.AddGoal(models.SavingsGoal{ID: uuid.New(), UserID: userID, Title: "Fund", TargetAmount: 1000})

	if err := svc.evaluateFinancialHealth(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertExpenseTrend); len(got) != 0 {
		t.Errorf("expense_trend alerts = %d, want 0 with one month of data", len(got))
	}
}

func TestEvaluateFinancialHealthNudges(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	// Transactions but no budgets and no goals: both nudges fire together.
	store.AddTransaction(expense(userID, 300, "Food", testNow.AddDate(0, 0, -2)))

	if err := svc.evaluateFinancialHealth(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertNoBudget); len(got) != 1 {
		t.Errorf("no_budget alerts = %d, want 1", len(got))
	}
	if got := store.AlertsOfType(models.AlertNoSavingsGoals); len(got) != 1 {
		t.Errorf("no_savings_goals alerts = %d, want 1", len(got))
	}
}

func TestEvaluateFinancialHealthQuietWithoutTransactions(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	if err := svc.evaluateFinancialHealth(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if alerts := store.Alerts(); len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0 without any transactions", len(alerts))
	}
}
