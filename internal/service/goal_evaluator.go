package service

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// goalMilestones are the progress thresholds eligible for a milestone
// alert, checked in descending order so only the highest met threshold
// fires.
var goalMilestones = []float64{75, 50, 25}

// evaluateSavingsGoals detects completed goals and progress milestones.
// The engine, not the CRUD layer, owns flipping is_completed: the flag is
// persisted as soon as the crossing is observed, independent of whether
// the alert insert succeeds.
func (s *AlertService) evaluateSavingsGoals(ctx context.Context, userID uuid.UUID) error {
	goals, err := s.goals.ListIncomplete(ctx, userID)
	if err != nil {
		return fmt.Errorf("list incomplete goals: %w", err)
	}

	for _, goal := range goals {
		goalID := goal.ID

		if goal.CurrentAmount >= goal.TargetAmount {
			if err := s.goals.MarkCompleted(ctx, goal.ID); err != nil {
				return fmt.Errorf("mark goal %s completed: %w", goal.ID, err)
			}
			s.createAlert(ctx, userID, alertDraft{
				Type:      models.AlertGoalAchieved,
				Title:     "Goal Achieved",
				Message:   fmt.Sprintf("Congratulations! You've reached your %q goal of %.2f.", goal.Title, goal.TargetAmount),
				Severity:  models.SeverityLow,
				RelatedID: &goalID,
			})
			continue
		}

		progress := goal.Progress()
		for _, milestone := range goalMilestones {
			if progress >= milestone {
				s.createAlert(ctx, userID, alertDraft{
					Type:      models.AlertGoalMilestone,
					Title:     "Savings Milestone",
					Message:   fmt.Sprintf("You've reached %.0f%% of your %q goal.", milestone, goal.Title),
					Severity:  models.SeverityLow,
					RelatedID: &goalID,
				})
				break
			}
		}
	}

	return nil
}
