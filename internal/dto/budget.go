package dto

type CreateBudgetRequest struct {
	Category       string   `json:"category"`
	Amount         float64  `json:"amount"`
	Period         string   `json:"period"`
	StartDate      string   `json:"start_date,omitempty"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
}

type UpdateBudgetRequest struct {
	Category       *string  `json:"category,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	Period         *string  `json:"period,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
}

type BudgetResponse struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Period         string  `json:"period"`
	StartDate      string  `json:"start_date"`
	IsActive       bool    `json:"is_active"`
	AlertThreshold float64 `json:"alert_threshold"`
	CreatedAt      string  `json:"created_at"`
}
