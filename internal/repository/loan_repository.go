package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moneta/internal/model"
)

// LoanRepository defines loan persistence operations.
type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error
	Update(ctx context.Context, loan *model.Loan) error
	FindByID(ctx context.Context, id uint) (*model.Loan, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Loan, error)
	ListByStatus(ctx context.Context, status model.LoanStatus) ([]model.Loan, error)
	ListByUsername(ctx context.Context, username string) ([]model.Loan, error)
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository.
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan record.
func (r *loanRepository) Create(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// Update updates an existing loan record.
func (r *loanRepository) Update(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// FindByID finds a loan by ID.
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*model.Loan, error) {
	var loan model.Loan
	if err := r.db.WithContext(ctx).First(&loan, id).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindByIDForUpdate finds a loan by ID with a row-level lock for update.
func (r *loanRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Loan, error) {
	var loan model.Loan
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&loan, id).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListByStatus lists loans in a given state, oldest first (manager queue order).
func (r *loanRepository) ListByStatus(ctx context.Context, status model.LoanStatus) ([]model.Loan, error) {
	var loans []model.Loan
	if err := r.db.WithContext(ctx).Where("status = ?", status).
		Order("created_at ASC").Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// ListByUsername lists all loans of one client.
func (r *loanRepository) ListByUsername(ctx context.Context, username string) ([]model.Loan, error) {
	var loans []model.Loan
	if err := r.db.WithContext(ctx).Where("username = ?", username).
		Order("created_at DESC").Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}
