package repository

import (
	"context"

	"gorm.io/gorm"

	"moneta/internal/model"
)

// TransactionRepository defines ledger log persistence operations.
// The log is append-only; there are no update or delete methods.
type TransactionRepository interface {
	Create(ctx context.Context, entry *model.Transaction) error
	// ListByUsername returns all entries for accounts owned by the user, newest first.
	ListByUsername(ctx context.Context, username string) ([]model.Transaction, error)
	ListByAccount(ctx context.Context, accountNumber string) ([]model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a ledger log entry.
func (r *transactionRepository) Create(ctx context.Context, entry *model.Transaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByUsername returns the transaction history across all of a user's accounts.
func (r *transactionRepository) ListByUsername(ctx context.Context, username string) ([]model.Transaction, error) {
	var entries []model.Transaction
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.number = transactions.account_number").
		Where("accounts.owner_username = ?", username).
		Order("transactions.timestamp DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByAccount returns all entries for one account, newest first.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountNumber string) ([]model.Transaction, error) {
	var entries []model.Transaction
	err := r.db.WithContext(ctx).Where("account_number = ?", accountNumber).
		Order("timestamp DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
