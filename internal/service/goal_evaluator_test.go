package service

import (
	"context"
	"strings"
	"testing"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

func TestEvaluateSavingsGoalsAchievement(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()
	goalID := uuid.New()

	store.AddGoal(models.SavingsGoal{
		ID:            goalID,
		UserID:        userID,
		Title:         "Vacation",
		TargetAmount:  500,
		CurrentAmount: 500,
	})

	if err := svc.evaluateSavingsGoals(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	goal, ok := store.Goal(goalID)
	if !ok {
		t.Fatal("goal disappeared")
	}
	if !goal.IsCompleted {
		t.Error("goal should be marked completed")
	}
	if got := store.AlertsOfType(models.AlertGoalAchieved); len(got) != 1 {
		t.Fatalf("goal_achieved alerts = %d, want 1", len(got))
	}

	// A completed goal is filtered out of the next run entirely.
	if err := svc.evaluateSavingsGoals(context.Background(), userID); err != nil {
		t.Fatal(err)
	}
	if got := store.AlertsOfType(models.AlertGoalAchieved); len(got) != 1 {
		t.Errorf("goal_achieved alerts after re-run = %d, want still 1", len(got))
	}
}

func TestEvaluateSavingsGoalsMilestones(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		wantMilestone string
	}{
		{"no milestone below 25", 200, ""},
		{"25 percent", 260, "25%"},
		{"50 percent", 510, "50%"},
		{"highest met milestone only", 800, "75%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := testEngine(testNow)
			userID := uuid.New()

			store.AddGoal(models.SavingsGoal{
				ID:            uuid.New(),
				UserID:        userID,
				Title:         "Emergency Fund",
				TargetAmount:  1000,
				CurrentAmount: tt.current,
			})

			if err := svc.evaluateSavingsGoals(context.Background(), userID); err != nil {
				t.Fatal(err)
			}

			milestones := store.AlertsOfType(models.AlertGoalMilestone)
			if tt.wantMilestone == "" {
				if len(milestones) != 0 {
					t.Fatalf("goal_milestone alerts = %d, want 0", len(milestones))
				}
				return
			}

			if len(milestones) != 1 {
				t.Fatalf("goal_milestone alerts = %d, want exactly 1", len(milestones))
			}
			if !strings.Contains(milestones[0].Message, tt.wantMilestone) {
				t.Errorf("message %q should reference the %s milestone", milestones[0].Message, tt.wantMilestone)
			}
		})
	}
}

func TestEvaluateSavingsGoalsZeroTargetCompletesInstantly(t *testing.T) {
	svc, store := testEngine(testNow)
	userID := uuid.New()
	goalID := uuid.New()

	store.AddGoal(models.SavingsGoal{
		ID:           goalID,
		UserID:       userID,
		Title:        "Empty Goal",
		TargetAmount: 0,
	})

	if err := svc.evaluateSavingsGoals(context.Background(), userID); err != nil {
		t.Fatal(err)
	}

	goal, _ := store.Goal(goalID)
	if !goal.IsCompleted {
		t.Error("zero-target goal should complete instantly")
	}
}
