package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moneta/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByNumber(ctx context.Context, number string) (*model.Account, error)
	FindByNumberForUpdate(ctx context.Context, number string) (*model.Account, error)
	FindByUsername(ctx context.Context, username string) ([]model.Account, error)
	// FirstByUsername returns the user's oldest account (lowest ID).
	FirstByUsername(ctx context.Context, username string) (*model.Account, error)
	UpdateBalance(ctx context.Context, number string, newBalance decimal.Decimal) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account. The account number is derived from the
// auto-increment ID in the model's AfterCreate hook.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByNumber finds an account by its account number.
func (r *accountRepository) FindByNumber(ctx context.Context, number string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByNumberForUpdate finds an account by number with a row-level lock for update.
func (r *accountRepository) FindByNumberForUpdate(ctx context.Context, number string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("number = ?", number).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUsername finds all accounts owned by a user, oldest first.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("owner_username = ?", username).
		Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FirstByUsername returns the user's oldest account.
func (r *accountRepository) FirstByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("owner_username = ?", username).
		Order("id ASC").First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateBalance updates the balance of an account.
func (r *accountRepository) UpdateBalance(ctx context.Context, number string, newBalance decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("number = ?", number).
		Update("balance", newBalance).Error
}
