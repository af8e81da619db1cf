package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneta/internal/cache"
	"moneta/internal/errors"
	"moneta/internal/mailer"
	"moneta/internal/model"
	"moneta/internal/repository"
)

// Loans carry a flat 15% fee added once at creation; the term is stored
// but takes no part in the arithmetic.
var (
	loanDebtMultiplier = decimal.NewFromFloat(1.15)
	// repayTolerance allows overshooting the remaining debt by up to
	// one currency unit to absorb rounding on the client side.
	repayTolerance = decimal.NewFromInt(1)
)

// LoanService handles the loan lifecycle: request, manager decision,
// and repayment.
type LoanService interface {
	Request(ctx context.Context, username string, principal decimal.Decimal, termMonths int) (*model.Loan, error)
	Approve(ctx context.Context, loanID uint) error
	Reject(ctx context.Context, loanID uint) error
	// Repay pays amount from the given account towards the loan.
	// username, when non-empty, must be the borrower.
	Repay(ctx context.Context, username string, loanID uint, accountNumber string, amount decimal.Decimal) error
	ListPending(ctx context.Context) ([]model.Loan, error)
	ListForUser(ctx context.Context, username string) ([]model.Loan, error)
}

type loanService struct {
	uow      repository.UnitOfWork
	loanRepo repository.LoanRepository
	userRepo repository.UserRepository
	cache    *cache.Client
	mailer   *mailer.Mailer
}

// NewLoanService creates a new loan service.
func NewLoanService(
	uow repository.UnitOfWork,
	loanRepo repository.LoanRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
	m *mailer.Mailer,
) LoanService {
	return &loanService{
		uow:      uow,
		loanRepo: loanRepo,
		userRepo: userRepo,
		cache:    cache,
		mailer:   m,
	}
}

// Request files a pending loan. No funds move until a manager approves.
func (s *loanService) Request(ctx context.Context, username string, principal decimal.Decimal, termMonths int) (*model.Loan, error) {
	if principal.LessThanOrEqual(decimal.Zero) || termMonths <= 0 {
		return nil, errors.ErrInvalidAmount
	}

	loan := &model.Loan{
		Username:      username,
		Principal:     principal,
		TermMonths:    termMonths,
		Status:        model.LoanStatusPending,
		RemainingDebt: principal.Mul(loanDebtMultiplier).Round(2),
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	return loan, nil
}

// Approve moves a pending loan to approved and credits the borrower's
// first account with the principal (not the remaining debt), appending
// one LOAN_APPROVED log entry. The whole decision is one transaction:
// a borrower without an account leaves the loan pending.
func (s *loanService) Approve(ctx context.Context, loanID uint) error {
	var borrower string
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		loan, err := repos.Loans.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrLoanNotFound
			}
			return err
		}
		if loan.Status != model.LoanStatusPending {
			return errors.ErrInvalidState
		}
		borrower = loan.Username

		account, err := repos.Accounts.FirstByUsername(ctx, loan.Username)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		account, err = repos.Accounts.FindByNumberForUpdate(ctx, account.Number)
		if err != nil {
			return err
		}

		loan.Status = model.LoanStatusApproved
		if err := repos.Loans.Update(ctx, loan); err != nil {
			return fmt.Errorf("update loan: %w", err)
		}
		if err := repos.Accounts.UpdateBalance(ctx, account.Number, account.Balance.Add(loan.Principal)); err != nil {
			return fmt.Errorf("credit account: %w", err)
		}
		return repos.Transactions.Create(ctx, &model.Transaction{
			AccountNumber: account.Number,
			Kind:          model.TransactionLoanApproved,
			Amount:        loan.Principal,
			Description:   fmt.Sprintf("Loan #%d funds", loan.ID),
			Timestamp:     time.Now(),
		})
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, accountsCacheKey(borrower))
	s.notifyDecision(ctx, borrower, loanID, true)
	return nil
}

// Reject moves a pending loan to rejected. Terminal.
func (s *loanService) Reject(ctx context.Context, loanID uint) error {
	var borrower string
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		loan, err := repos.Loans.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrLoanNotFound
			}
			return err
		}
		if loan.Status != model.LoanStatusPending {
			return errors.ErrInvalidState
		}
		borrower = loan.Username

		loan.Status = model.LoanStatusRejected
		return repos.Loans.Update(ctx, loan)
	})
	if err != nil {
		return err
	}

	s.notifyDecision(ctx, borrower, loanID, false)
	return nil
}

// Repay pays down an approved loan from one of the borrower's accounts.
// The debt is floored at zero and the loan flips to paid when it gets
// there; overshooting the debt by more than one unit is rejected.
func (s *loanService) Repay(ctx context.Context, username string, loanID uint, accountNumber string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.ErrInvalidAmount
	}

	var borrower string
	var paidOff bool
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		loan, err := repos.Loans.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrLoanNotFound
			}
			return err
		}
		if loan.Status != model.LoanStatusApproved {
			return errors.ErrLoanNotActive
		}
		if username != "" && loan.Username != username {
			return errors.ErrForbidden
		}
		borrower = loan.Username

		account, err := repos.Accounts.FindByNumberForUpdate(ctx, accountNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		if account.OwnerUsername != loan.Username {
			return errors.ErrForbidden
		}
		if account.Balance.LessThan(amount) {
			return errors.ErrInsufficientFunds
		}
		if amount.GreaterThan(loan.RemainingDebt.Add(repayTolerance)) {
			return errors.ErrOverpayment
		}

		newDebt := loan.RemainingDebt.Sub(amount)
		if newDebt.LessThanOrEqual(decimal.Zero) {
			newDebt = decimal.Zero
			loan.Status = model.LoanStatusPaid
			paidOff = true
		}
		loan.RemainingDebt = newDebt
		if err := repos.Loans.Update(ctx, loan); err != nil {
			return fmt.Errorf("update loan: %w", err)
		}
		if err := repos.Accounts.UpdateBalance(ctx, accountNumber, account.Balance.Sub(amount)); err != nil {
			return fmt.Errorf("debit account: %w", err)
		}
		return repos.Transactions.Create(ctx, &model.Transaction{
			AccountNumber: accountNumber,
			Kind:          model.TransactionLoanRepayment,
			Amount:        amount,
			Description:   fmt.Sprintf("Loan #%d repayment", loan.ID),
			Timestamp:     time.Now(),
		})
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, accountsCacheKey(borrower))
	if paidOff {
		if user, err := s.userRepo.FindByUsername(ctx, borrower); err == nil {
			if err := s.mailer.SendLoanPaid(user.Email, loanID); err != nil {
				log.Printf("loan paid mail: %v", err)
			}
		}
	}
	return nil
}

// ListPending returns the manager's decision queue.
func (s *loanService) ListPending(ctx context.Context) ([]model.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, model.LoanStatusPending)
}

// ListForUser returns all loans of one client.
func (s *loanService) ListForUser(ctx context.Context, username string) ([]model.Loan, error) {
	return s.loanRepo.ListByUsername(ctx, username)
}

// notifyDecision emails the borrower about a decision, best effort.
func (s *loanService) notifyDecision(ctx context.Context, username string, loanID uint, approved bool) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return
	}
	if err := s.mailer.SendLoanDecision(user.Email, loanID, approved); err != nil {
		log.Printf("loan decision mail: %v", err)
	}
}
