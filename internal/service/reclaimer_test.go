package service

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository/memstore"

	"github.com/google/uuid"
)

func seedAlert(t *testing.T, store *memstore.Store, a models.Alert) uuid.UUID {
	t.Helper()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if err := store.Insert(context.Background(), &a); err != nil {
		t.Fatal(err)
	}
	return a.ID
}

func TestReclaimBalanceAlertsAfterRecovery(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	// Balance recovered to 150 this month.
	store.AddTransaction(incomeTx(userID, 200, testNow.AddDate(0, 0, -3)))
	store.AddTransaction(expense(userID, 50, "Food", testNow.AddDate(0, 0, -2)))

	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertLowBalance,
		Severity:  models.SeverityHigh,
		CreatedAt: testNow.Add(-2 * time.Hour),
	})
	readID := seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertNegativeBalance,
		Severity:  models.SeverityHigh,
		CreatedAt: testNow.Add(-3 * time.Hour),
	})
	store.MarkAlertRead(readID)

	if err := svc.reclaimOutdated(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertLowBalance); len(got) != 0 {
		t.Errorf("unread low_balance should be reclaimed after recovery")
	}
	if got := store.AlertsOfType(models.AlertNegativeBalance); len(got) != 1 {
		t.Errorf("read alerts are history and must be preserved")
	}
}

func TestReclaimKeepsBalanceAlertsWhileBalanceLow(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	store.AddTransaction(incomeTx(userID, 80, testNow.AddDate(0, 0, -3)))

	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertLowBalance,
		Severity:  models.SeverityHigh,
		CreatedAt: testNow.Add(-2 * time.Hour),
	})

	if err := svc.reclaimOutdated(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertLowBalance); len(got) != 1 {
		t.Errorf("low_balance should persist while the balance stays under 100")
	}
}

func TestReclaimBudgetAlertsFromPreviousPeriod(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()
	budgetID := uuid.New()

	store.AddBudget(models.Budget{
		ID:             budgetID,
		UserID:         userID,
		Category:       "Food",
		Amount:         100,
		Period:         models.PeriodMonthly,
		IsActive:       true,
		AlertThreshold: 80,
	})

	// One alert from last month's period, one from the current period.
	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertBudgetExceeded,
		Severity:  models.SeverityHigh,
		RelatedID: &budgetID,
		CreatedAt: testNow.AddDate(0, -1, 0),
	})
	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertBudgetWarning,
		Severity:  models.SeverityMedium,
		RelatedID: &budgetID,
		CreatedAt: testNow.Add(-time.Hour),
	})

	if err := svc.reclaimOutdated(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertBudgetExceeded); len(got) != 0 {
		t.Errorf("previous-period budget alert should be reclaimed")
	}
	if got := store.AlertsOfType(models.AlertBudgetWarning); len(got) != 1 {
		t.Errorf("current-period budget alert should survive")
	}
}

func TestReclaimStaleSweepExemptsHighSeverityAndRead(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	staleAge := testNow.AddDate(0, 0, -8)

	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertNoBudget,
		Severity:  models.SeverityLow,
		CreatedAt: staleAge,
	})
	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertExpenseTrend,
		Severity:  models.SeverityMedium,
		CreatedAt: staleAge,
	})
	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertOverspending,
		Severity:  models.SeverityHigh,
		CreatedAt: staleAge,
	})
	readID := seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertNoSavingsGoals,
		Severity:  models.SeverityLow,
		CreatedAt: staleAge,
	})
	store.MarkAlertRead(readID)

	if err := svc.reclaimOutdated(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	if got := store.AlertsOfType(models.AlertNoBudget); len(got) != 0 {
		t.Errorf("stale unread low alert should be swept")
	}
	if got := store.AlertsOfType(models.AlertExpenseTrend); len(got) != 0 {
		t.Errorf("stale unread medium alert should be swept")
	}
	if got := store.AlertsOfType(models.AlertOverspending); len(got) != 1 {
		t.Errorf("high severity alerts are never auto-expired")
	}
	if got := store.AlertsOfType(models.AlertNoSavingsGoals); len(got) != 1 {
		t.Errorf("read alerts are never swept")
	}
}

func TestReclaimRestoresConsistencyEndToEnd(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()

	seedAlert(t, store, models.Alert{
		UserID:    userID,
		Type:      models.AlertLowBalance,
		Severity:  models.SeverityHigh,
		CreatedAt: testNow.Add(-2 * time.Hour),
	})

	// Balance recovers to 150, then a full generation pass runs.
	store.AddTransaction(incomeTx(userID, 150, testNow.AddDate(0, 0, -1)))

	svc.GenerateAlerts(context.Background(), userID)

	if got := store.AlertsOfType(models.AlertLowBalance); len(got) != 0 {
		t.Errorf("low_balance should be gone after recovery, got %d", len(got))
	}
}
