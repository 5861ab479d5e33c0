package service

import (
	"context"
	"testing"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

func TestEvaluateBalance(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses float64
		wantType models.AlertType
	}{
		{"healthy balance is silent", 1000, 500, ""},
		{"low balance", 1000, 950, models.AlertLowBalance},
		{"zero balance counts as low", 500, 500, models.AlertLowBalance},
		{"negative balance", 1000, 1300, models.AlertNegativeBalance},
		{"deeply negative balance falls in the dead zone", 1000, 1600, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := testEngine(testNow)
			userID := uuid.New()

			store.AddTransaction(incomeTx(userID, tt.income, testNow.AddDate(0, 0, -5)))
			store.AddTransaction(expense(userID, tt.expenses, "Misc", testNow.AddDate(0, 0, -2)))

			if err := svc.evaluateBalance(context.Background(), userID); err != nil {
				t.Fatal(err)
			}

			alerts := store.Alerts()
			if tt.wantType == "" {
				if len(alerts) != 0 {
					t.Fatalf("alerts = %d, want 0, got %v", len(alerts), countByType(alerts))
				}
				return
			}

			if len(alerts) != 1 {
				t.Fatalf("alerts = %d, want exactly 1", len(alerts))
			}
			if alerts[0].Type != tt.wantType {
				t.Errorf("type = %s, want %s", alerts[0].Type, tt.wantType)
			}
			if alerts[0].Severity != models.SeverityHigh {
				t.Errorf("severity = %s, want high", alerts[0].Severity)
			}
		})
	}
}

func TestEvaluateBalanceEmptyMonthIsSilent(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	// Activity last month, nothing this month: the balance evaluator only
	// looks at the current calendar month.
	store.AddTransaction(expense(userID, 50, "Food", testNow.AddDate(0, -1, 0)))

	if err := svc.evaluateBalance(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if alerts := store.Alerts(); len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0 for an empty month", len(alerts))
	}
}

func TestEvaluateSavingsRate(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses float64
		wantType models.AlertType
	}{
		{"no income is silent", 0, 400, ""},
		{"nothing saved", 1000, 1000, models.AlertNoSavings},
		{"overspent counts as nothing saved", 1000, 1100, models.AlertNoSavings},
		{"low savings rate", 1000, 950, models.AlertLowSavingsRate},
		{"ten percent is healthy and silent", 1000, 900, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := testEngine(testNow)
			userID := uuid.New()

			if tt.income > 0 {
				store.AddTransaction(incomeTx(userID, tt.income, testNow.AddDate(0, 0, -5)))
			}
			if tt.expenses > 0 {
				store.AddTransaction(expense(userID, tt.expenses, "Misc", testNow.AddDate(0, 0, -2)))
			}

			if err := svc.evaluateSavingsRate(context.Background(), userID); err != nil {
				t.Fatal(err)
			}

			alerts := store.Alerts()
			if tt.wantType == "" {
				if len(alerts) != 0 {
					t.Fatalf("alerts = %d, want 0, got %v", len(alerts), countByType(alerts))
				}
				return
			}

			if len(alerts) != 1 {
				t.Fatalf("alerts = %d, want exactly 1", len(alerts))
			}
			if alerts[0].Type != tt.wantType {
				t.Errorf("type = %s, want %s", alerts[0].Type, tt.wantType)
			}
		})
	}
}
