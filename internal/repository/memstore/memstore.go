// Package memstore provides an in-memory implementation of the alert
// engine's store interfaces. It mirrors the Postgres repositories'
// semantics, including the dedup bucket behavior of the alerts unique
// index, and backs the engine tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

const dedupBucketSeconds = 1800

type Store struct {
	mu           sync.Mutex
	transactions []models.Transaction
	budgets      []models.Budget
	goals        []models.SavingsGoal
	alerts       []models.Alert
}

func New() *Store {
	return &Store{}
}

func (s *Store) AddTransaction(tx models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
}

func (s *Store) AddBudget(b models.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, b)
}

func (s *Store) AddGoal(g models.SavingsGoal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
}

func (s *Store) ListByUser(_ context.Context, userID uuid.UUID, from, to *time.Time, category string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != userID {
			continue
		}
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && !tx.Date.Before(*to) {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (s *Store) UserIDsWithActivity(_ context.Context, since time.Time) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, tx := range s.transactions {
		if tx.Date.Before(since) {
			continue
		}
		if _, ok := seen[tx.UserID]; ok {
			continue
		}
		seen[tx.UserID] = struct{}{}
		ids = append(ids, tx.UserID)
	}
	return ids, nil
}

func (s *Store) ListActive(_ context.Context, userID uuid.UUID) ([]models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) ListIncomplete(_ context.Context, userID uuid.UUID) ([]models.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.SavingsGoal
	for _, g := range s.goals {
		if g.UserID == userID && !g.IsCompleted {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Store) MarkCompleted(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].IsCompleted = true
		}
	}
	return nil
}

// Goal returns a copy of the goal with the given ID, if present.
func (s *Store) Goal(id uuid.UUID) (models.SavingsGoal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.goals {
		if g.ID == id {
			return g, true
		}
	}
	return models.SavingsGoal{}, false
}

func (s *Store) Insert(_ context.Context, a *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirror the unique index on (user_id, type, related_id, dedup_bucket).
	bucket := a.CreatedAt.Unix() / dedupBucketSeconds
	for _, existing := range s.alerts {
		if existing.UserID == a.UserID &&
			existing.Type == a.Type &&
			sameRelated(existing.RelatedID, a.RelatedID) &&
			existing.CreatedAt.Unix()/dedupBucketSeconds == bucket {
			return nil
		}
	}

	s.alerts = append(s.alerts, *a)
	return nil
}

func (s *Store) FindRecent(_ context.Context, userID uuid.UUID, alertType models.AlertType, relatedID *uuid.UUID, since time.Time) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.Alert
	for i := range s.alerts {
		a := s.alerts[i]
		if a.UserID != userID || a.Type != alertType || !sameRelated(a.RelatedID, relatedID) {
			continue
		}
		if a.CreatedAt.Before(since) {
			continue
		}
		if found == nil || a.CreatedAt.After(found.CreatedAt) {
			match := a
			found = &match
		}
	}
	return found, nil
}

func (s *Store) DeleteMatching(_ context.Context, userID uuid.UUID, f models.AlertFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if a.UserID == userID && matches(a, f) {
			continue
		}
		kept = append(kept, a)
	}
	s.alerts = kept
	return nil
}

// Alerts returns a snapshot of all stored alerts.
func (s *Store) Alerts() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Alert(nil), s.alerts...)
}

// AlertsOfType returns the stored alerts of one type.
func (s *Store) AlertsOfType(t models.AlertType) []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Alert
	for _, a := range s.alerts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// MarkAlertRead flags an alert as acknowledged.
func (s *Store) MarkAlertRead(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].IsRead = true
		}
	}
}

func matches(a models.Alert, f models.AlertFilter) bool {
	if f.UnreadOnly && a.IsRead {
		return false
	}
	if len(f.Types) > 0 && !containsType(f.Types, a.Type) {
		return false
	}
	if len(f.Severities) > 0 && !containsSeverity(f.Severities, a.Severity) {
		return false
	}
	if f.RelatedID != nil && !sameRelated(a.RelatedID, f.RelatedID) {
		return false
	}
	if f.CreatedBefore != nil && !a.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

func sameRelated(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func containsType(types []models.AlertType, t models.AlertType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func containsSeverity(severities []models.Severity, s models.Severity) bool {
	for _, v := range severities {
		if v == s {
			return true
		}
	}
	return false
}
