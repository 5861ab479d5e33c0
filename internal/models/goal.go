package models

import (
	"time"

	"github.com/google/uuid"
)

type SavingsGoal struct {
	ID            uuid.UUID  `db:"id"`
	UserID        uuid.UUID  `db:"user_id"`
	Title         string     `db:"title"`
	TargetAmount  float64    `db:"target_amount"`
	CurrentAmount float64    `db:"current_amount"`
	Deadline      *time.Time `db:"deadline"`
	IsCompleted   bool       `db:"is_completed"`
	CreatedAt     time.Time  `db:"created_at"`
}

// Progress returns the completion percentage of the goal.
func (g *SavingsGoal) Progress() float64 {
	if g.TargetAmount == 0 {
		return 100
	}
	return g.CurrentAmount / g.TargetAmount * 100
}
