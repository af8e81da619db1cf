package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles every repository bound to a single database handle.
// Inside WithTransaction they all share one transaction, which is what
// makes multi-row operations (transfer, loan approval, repayment,
// appeal resolution) all-or-nothing.
type Repos struct {
	Users        UserRepository
	Accounts     AccountRepository
	Transactions TransactionRepository
	Loans        LoanRepository
	Appeals      AppealRepository
}

// UnitOfWork runs a function against transaction-bound repositories.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repos) error) error
}

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a GORM-backed unit of work.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db}
}

// NewRepos binds all repositories to the given database handle.
func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Users:        NewUserRepository(db),
		Accounts:     NewAccountRepository(db),
		Transactions: NewTransactionRepository(db),
		Loans:        NewLoanRepository(db),
		Appeals:      NewAppealRepository(db),
	}
}

// WithTransaction executes fn inside one database transaction; any
// error rolls back every write made through the bound repositories.
func (u *unitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepos(tx))
	})
}
