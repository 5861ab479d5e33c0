package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type Transaction struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Type      TransactionType `db:"type"`
	Amount    float64         `db:"amount"`
	Category  string          `db:"category"`
	Date      time.Time       `db:"date"`
	Notes     string          `db:"notes"`
	CreatedAt time.Time       `db:"created_at"`
}
