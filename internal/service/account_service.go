package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"moneta/internal/cache"
	"moneta/internal/errors"
	"moneta/internal/model"
	"moneta/internal/repository"
)

const accountsCacheTTL = 5 * time.Minute

func accountsCacheKey(username string) string {
	return fmt.Sprintf("accounts:%s", username)
}

// AccountService handles account provisioning and lookup.
type AccountService interface {
	// CreateAccount opens an account with freshly synthesized card data.
	CreateAccount(ctx context.Context, username, accountType string) (*model.Account, error)
	ListAccounts(ctx context.Context, username string) ([]model.Account, error)
	GetAccount(ctx context.Context, number string) (*model.Account, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
}

// NewAccountService creates a new account service.
func NewAccountService(
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

// CreateAccount opens an additional account for an existing user.
func (s *accountService) CreateAccount(ctx context.Context, username, accountType string) (*model.Account, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if accountType == "" {
		accountType = "Checking"
	}
	card := generateCardDetails(time.Now())
	account := &model.Account{
		OwnerUsername: username,
		Type:          accountType,
		CardNumber:    card.Number,
		CVV:           card.CVV,
		ExpiryDate:    card.Expiry,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	_ = s.cache.Delete(ctx, accountsCacheKey(username))
	return account, nil
}

// ListAccounts returns the user's accounts with caching.
func (s *accountService) ListAccounts(ctx context.Context, username string) ([]model.Account, error) {
	if data, _ := s.cache.Get(ctx, accountsCacheKey(username)); data != nil {
		var cached []model.Account
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	accounts, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(accounts); err == nil {
		_ = s.cache.Set(ctx, accountsCacheKey(username), payload, accountsCacheTTL)
	}
	return accounts, nil
}

// GetAccount finds one account by number.
func (s *accountService) GetAccount(ctx context.Context, number string) (*model.Account, error) {
	account, err := s.accountRepo.FindByNumber(ctx, number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
