package models

import (
	"gorm.io/gorm"
	"time"
)

// Transaction types
const (
	TxIncome  = "income"
	TxExpense = "expense"
)

// Transaction is one income or expense entry in the finance ledger.
// Amounts are positive whole currency units; Type carries the sign.
type Transaction struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ProfileID string `gorm:"index;not null" json:"profile_id"`
	Type      string `gorm:"not null" json:"type"` // income, expense
	Amount    int64  `gorm:"not null" json:"amount"`
	Category  string `gorm:"default:other" json:"category"`
	Note      string `json:"note"`
	Day       string `gorm:"index" json:"day"` // YYYY-MM-DD
}

// Signed returns the amount as it affects the balance.
func (t *Transaction) Signed() int64 {
	if t.Type == TxExpense {
		return -t.Amount
	}
	return t.Amount
}
