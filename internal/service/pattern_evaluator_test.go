package service

import (
	"context"
	"strings"
	"testing"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

func TestEvaluateSpendingPatternNoActivity(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	// A transaction outside the 30-day window does not count as activity.
	store.AddTransaction(expense(userID, 100, "Food", testNow.AddDate(0, 0, -45)))

	if err := svc.evaluateSpendingPattern(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	alerts := store.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want exactly 1", len(alerts))
	}
	if alerts[0].Type != models.AlertNoActivity {
		t.Errorf("type = %s, want no_activity", alerts[0].Type)
	}
}

func TestEvaluateSpendingPatternOverspending(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	store.AddTransaction(incomeTx(userID, 800, testNow.AddDate(0, 0, -10)))
	store.AddTransaction(expense(userID, 500, "Rent", testNow.AddDate(0, 0, -8)))
	store.AddTransaction(expense(userID, 400, "Food", testNow.AddDate(0, 0, -3)))

	if err := svc.evaluateSpendingPattern(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	over := store.AlertsOfType(models.AlertOverspending)
	if len(over) != 1 {
		t.Fatalf("spending_more_than_income alerts = %d, want 1", len(over))
	}
	if over[0].Severity != models.SeverityHigh {
		t.Errorf("severity = %s, want high", over[0].Severity)
	}
}

func TestEvaluateSpendingPatternHighCategoryShare(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	// Rent is 500 of 900 total expenses, a 56% share.
	store.AddTransaction(incomeTx(userID, 2000, testNow.AddDate(0, 0, -10)))
	store.AddTransaction(expense(userID, 500, "Rent", testNow.AddDate(0, 0, -8)))
	store.AddTransaction(expense(userID, 250, "Food", testNow.AddDate(0, 0, -5)))
	store.AddTransaction(expense(userID, 150, "Transport", testNow.AddDate(0, 0, -3)))

	if err := svc.evaluateSpendingPattern(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	high := store.AlertsOfType(models.AlertHighCategorySpend)
	if len(high) != 1 {
		t.Fatalf("high_category_spending alerts = %d, want 1", len(high))
	}
	if !strings.Contains(high[0].Message, "Rent") {
		t.Errorf("message %q should name the dominant category", high[0].Message)
	}
	if !strings.Contains(high[0].Message, "56%") {
		t.Errorf("message %q should state the share", high[0].Message)
	}
}

func TestEvaluateSpendingPatternBalancedCategoriesAreSilent(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	store.AddTransaction(expense(userID, 300, "Rent", testNow.AddDate(0, 0, -8)))
	store.AddTransaction(expense(userID, 300, "Food", testNow.AddDate(0, 0, -5)))
	store.AddTransaction(expense(userID, 300, "Transport", testNow.AddDate(0, 0, -3)))

	if err := svc.evaluateSpendingPattern(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertHighCategorySpend); len(got) != 0 {
		t.Errorf("high_category_spending alerts = %d, want 0 at a 33%% share", len(got))
	}
}

func TestEvaluateSpendingPatternGoodSavingsRate(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	// Saving 30% of income earns the positive-reinforcement alert.
	store.AddTransaction(incomeTx(userID, 1000, testNow.AddDate(0, 0, -10)))
	store.AddTransaction(expense(userID, 350, "Food", testNow.AddDate(0, 0, -5)))
	store.AddTransaction(expense(userID, 350, "Rent", testNow.AddDate(0, 0, -3)))

	if err := svc.evaluateSpendingPattern(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertGoodSavingsRate); len(got) != 1 {
		t.Errorf("good_savings_rate alerts = %d, want 1", len(got))
	}
	if got := store.AlertsOfType(models.AlertOverspending); len(got) != 0 {
		t.Errorf("spending_more_than_income alerts = %d, want 0", len(got))
	}
}
