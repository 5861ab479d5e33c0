package service

import (
	"context"
	"strings"
	"testing"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

func TestEvaluateBudgetsThresholds(t *testing.T) {
	tests := []struct {
		name        string
		spent       float64
		wantType    models.AlertType
		wantMessage string
	}{
		{
			name:  "below threshold stays silent",
			spent: 79,
		},
		{
			name:        "at threshold warns",
			spent:       85,
			wantType:    models.AlertBudgetWarning,
			wantMessage: "85%",
		},
		{
			name:        "over limit exceeds, never warns",
			spent:       101,
			wantType:    models.AlertBudgetExceeded,
			wantMessage: "101.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := testEngine(testNow)
			userID := uuid.New()

			store.AddTransaction(expense(userID, tt.spent, "Food", testNow.AddDate(0, 0, -1)))
			store.AddBudget(models.Budget{
				ID:             uuid.New(),
				UserID:         userID,
				Category:       "Food",
				Amount:         100,
				Period:         models.PeriodMonthly,
				IsActive:       true,
				AlertThreshold: 80,
			})

			if err := svc.evaluateBudgets(context.Background(), userID); err != nil {
				t.Fatal(err)
			}

			alerts := store.Alerts()
			if tt.wantType == "" {
				if len(alerts) != 0 {
					t.Fatalf("alerts = %d, want 0", len(alerts))
				}
				return
			}

			if len(alerts) != 1 {
				t.Fatalf("alerts = %d, want exactly 1", len(alerts))
			}
			if alerts[0].Type != tt.wantType {
				t.Errorf("type = %s, want %s", alerts[0].Type, tt.wantType)
			}
			if !strings.Contains(alerts[0].Message, tt.wantMessage) {
				t.Errorf("message %q should contain %q", alerts[0].Message, tt.wantMessage)
			}
		})
	}
}

func TestEvaluateBudgetsIgnoresOtherCategoriesAndIncome(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	store.AddTransaction(expense(userID, 500, "Rent", testNow.AddDate(0, 0, -1)))
	store.AddTransaction(incomeTx(userID, 500, testNow.AddDate(0, 0, -1)))
	store.AddTransaction(expense(userID, 40, "Food", testNow.AddDate(0, 0, -1)))
	store.AddBudget(models.Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       "Food",
		Amount:         100,
		Period:         models.PeriodMonthly,
		IsActive:       true,
		AlertThreshold: 80,
	})

	if err := svc.evaluateBudgets(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if alerts := store.Alerts(); len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0; only Food expenses count toward the Food budget", len(alerts))
	}
}

func TestEvaluateBudgetsSkipsInactive(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	store.AddTransaction(expense(userID, 250, "Food", testNow.AddDate(0, 0, -1)))
	store.AddBudget(models.Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       "Food",
		Amount:         100,
		Period:         models.PeriodMonthly,
		IsActive:       false,
		AlertThreshold: 80,
	})

	if err := svc.evaluateBudgets(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if alerts := store.Alerts(); len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0 for a soft-deleted budget", len(alerts))
	}
}

func TestEvaluateBudgetsIgnoresSpendingBeforePeriodStart(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	// Last month's blowout is outside the current monthly period.
	store.AddTransaction(expense(userID, 900, "Food", testNow.AddDate(0, -1, 0)))
	store.AddTransaction(expense(userID, 30, "Food", testNow.AddDate(0, 0, -1)))
	store.AddBudget(models.Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       "Food",
		Amount:         100,
		Period:         models.PeriodMonthly,
		IsActive:       true,
		AlertThreshold: 80,
	})

	if err := svc.evaluateBudgets(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if alerts := store.Alerts(); len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0; prior-period spending must not count", len(alerts))
	}
}
