package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/balkashynov/lifeos/internal/models"
)

// ErrInvalidTransaction is returned for a bad type or a non-positive amount.
var ErrInvalidTransaction = errors.New("invalid transaction")

// CreateTransactionRequest holds the data needed to record a transaction
type CreateTransactionRequest struct {
	Type     string // income or expense
	Amount   int64
	Category string
	Note     string
}

// Summary totals the ledger.
type Summary struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

// CreateTransaction records an income or expense.
func (s *Store) CreateTransaction(ctx context.Context, profileID string, req CreateTransactionRequest) (*models.Transaction, error) {
	kind := strings.ToLower(strings.TrimSpace(req.Type))
	if kind != models.TxIncome && kind != models.TxExpense {
		return nil, fmt.Errorf("%w: type must be income or expense, got %q", ErrInvalidTransaction, req.Type)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		category = "other"
	}

	now := s.now()
	t := models.Transaction{
		ProfileID: profileID,
		Type:      kind,
		Amount:    req.Amount,
		Category:  category,
		Note:      strings.TrimSpace(req.Note),
		Day:       dayKey(now),
	}
	t.CreatedAt = now

	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions returns the newest live transactions. limit <= 0 means all.
func (s *Store) ListTransactions(ctx context.Context, profileID string, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction

	query := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Balance sums live transactions. Trashed entries do not count.
func (s *Store) Balance(ctx context.Context, profileID string) (Summary, error) {
	var sum Summary

	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount END), 0) AS income, "+
			"COALESCE(SUM(CASE WHEN type = ? THEN amount END), 0) AS expense",
			models.TxIncome, models.TxExpense).
		Where("profile_id = ?", profileID).
		Scan(&sum).Error
	if err != nil {
		return Summary{}, err
	}

	sum.Balance = sum.Income - sum.Expense
	return sum, nil
}
