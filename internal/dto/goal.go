package dto

type CreateGoalRequest struct {
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline,omitempty"`
}

type UpdateGoalRequest struct {
	Title        *string  `json:"title,omitempty"`
	TargetAmount *float64 `json:"target_amount,omitempty"`
	Deadline     *string  `json:"deadline,omitempty"`
}

type AddProgressRequest struct {
	Amount float64 `json:"amount"`
}

type GoalResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline,omitempty"`
	IsCompleted   bool    `json:"is_completed"`
	CreatedAt     string  `json:"created_at"`
}
