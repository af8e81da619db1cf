package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneta/internal/cache"
	"moneta/internal/errors"
	"moneta/internal/model"
	"moneta/internal/repository"
)

// LedgerService handles money movement: deposits, transfers, and the
// transaction history. Every balance mutation and its log entries run
// inside one database transaction.
type LedgerService interface {
	// Deposit credits an account. username, when non-empty, must own the account.
	Deposit(ctx context.Context, username, accountNumber string, amount decimal.Decimal) error
	// Transfer moves amount between two accounts atomically.
	Transfer(ctx context.Context, username, fromNumber, toNumber string, amount decimal.Decimal) error
	// History returns all log entries for the user's accounts, newest first.
	History(ctx context.Context, username string) ([]model.Transaction, error)
	// AccountHistory returns one account's log entries. username, when
	// non-empty, must own the account.
	AccountHistory(ctx context.Context, username, accountNumber string) ([]model.Transaction, error)
}

type ledgerService struct {
	uow             repository.UnitOfWork
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	cache           *cache.Client
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	uow repository.UnitOfWork,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	cache *cache.Client,
) LedgerService {
	return &ledgerService{
		uow:             uow,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Deposit credits an account and appends one DEPOSIT log entry.
func (s *ledgerService) Deposit(ctx context.Context, username, accountNumber string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.ErrInvalidAmount
	}

	var owner string
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		account, err := repos.Accounts.FindByNumberForUpdate(ctx, accountNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		if username != "" && account.OwnerUsername != username {
			return errors.ErrForbidden
		}
		owner = account.OwnerUsername

		if err := repos.Accounts.UpdateBalance(ctx, accountNumber, account.Balance.Add(amount)); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		return repos.Transactions.Create(ctx, &model.Transaction{
			AccountNumber: accountNumber,
			Kind:          model.TransactionDeposit,
			Amount:        amount,
			Description:   "Deposit",
			Timestamp:     time.Now(),
		})
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, accountsCacheKey(owner))
	return nil
}

// Transfer debits the source, credits the destination, and appends a
// TRANSFER_OUT/TRANSFER_IN pair sharing one timestamp. Either all of it
// happens or none of it does.
func (s *ledgerService) Transfer(ctx context.Context, username, fromNumber, toNumber string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) || fromNumber == toNumber {
		return errors.ErrInvalidAmount
	}

	var fromOwner, toOwner string
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		source, err := repos.Accounts.FindByNumberForUpdate(ctx, fromNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		if username != "" && source.OwnerUsername != username {
			return errors.ErrForbidden
		}
		if source.Balance.LessThan(amount) {
			return errors.ErrInsufficientFunds
		}

		destination, err := repos.Accounts.FindByNumberForUpdate(ctx, toNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		fromOwner, toOwner = source.OwnerUsername, destination.OwnerUsername

		if err := repos.Accounts.UpdateBalance(ctx, fromNumber, source.Balance.Sub(amount)); err != nil {
			return fmt.Errorf("update source balance: %w", err)
		}
		if err := repos.Accounts.UpdateBalance(ctx, toNumber, destination.Balance.Add(amount)); err != nil {
			return fmt.Errorf("update destination balance: %w", err)
		}

		// Both legs share one timestamp.
		ts := time.Now()
		if err := repos.Transactions.Create(ctx, &model.Transaction{
			AccountNumber: fromNumber,
			Kind:          model.TransactionTransferOut,
			Amount:        amount,
			Description:   fmt.Sprintf("Transfer to %s", toNumber),
			Timestamp:     ts,
		}); err != nil {
			return err
		}
		return repos.Transactions.Create(ctx, &model.Transaction{
			AccountNumber: toNumber,
			Kind:          model.TransactionTransferIn,
			Amount:        amount,
			Description:   fmt.Sprintf("Transfer from %s", fromNumber),
			Timestamp:     ts,
		})
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, accountsCacheKey(fromOwner))
	_ = s.cache.Delete(ctx, accountsCacheKey(toOwner))
	return nil
}

// History returns the transaction history across all of the user's accounts.
func (s *ledgerService) History(ctx context.Context, username string) ([]model.Transaction, error) {
	return s.transactionRepo.ListByUsername(ctx, username)
}

// AccountHistory returns the transaction history of a single account.
func (s *ledgerService) AccountHistory(ctx context.Context, username, accountNumber string) ([]model.Transaction, error) {
	account, err := s.accountRepo.FindByNumber(ctx, accountNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}
	if username != "" && account.OwnerUsername != username {
		return nil, errors.ErrForbidden
	}
	return s.transactionRepo.ListByAccount(ctx, accountNumber)
}
