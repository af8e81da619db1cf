package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"moneta/internal/model"
	"moneta/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByNumber(ctx context.Context, number string) (*model.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByNumberForUpdate(ctx context.Context, number string) (*model.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) ([]model.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountRepository) FirstByUsername(ctx context.Context, username string) (*model.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, number string, newBalance decimal.Decimal) error {
	args := m.Called(ctx, number, newBalance)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, entry *model.Transaction) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUsername(ctx context.Context, username string) ([]model.Transaction, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountNumber string) ([]model.Transaction, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *model.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *model.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) FindByID(ctx context.Context, id uint) (*model.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListByStatus(ctx context.Context, status model.LoanStatus) ([]model.Loan, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListByUsername(ctx context.Context, username string) ([]model.Loan, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Loan), args.Error(1)
}

// MockAppealRepository is a mock implementation of AppealRepository.
type MockAppealRepository struct {
	mock.Mock
}

func (m *MockAppealRepository) Create(ctx context.Context, appeal *model.Appeal) error {
	args := m.Called(ctx, appeal)
	return args.Error(0)
}

func (m *MockAppealRepository) Update(ctx context.Context, appeal *model.Appeal) error {
	args := m.Called(ctx, appeal)
	return args.Error(0)
}

func (m *MockAppealRepository) FindByID(ctx context.Context, id uint) (*model.Appeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appeal), args.Error(1)
}

func (m *MockAppealRepository) ListOpen(ctx context.Context) ([]model.Appeal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appeal), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, username string, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, username, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Get(1).(model.Role), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// mockRepos holds one set of repository mocks wired into a Repos bundle.
type mockRepos struct {
	users        *MockUserRepository
	accounts     *MockAccountRepository
	transactions *MockTransactionRepository
	loans        *MockLoanRepository
	appeals      *MockAppealRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:        new(MockUserRepository),
		accounts:     new(MockAccountRepository),
		transactions: new(MockTransactionRepository),
		loans:        new(MockLoanRepository),
		appeals:      new(MockAppealRepository),
	}
}

func (m *mockRepos) bundle() *repository.Repos {
	return &repository.Repos{
		Users:        m.users,
		Accounts:     m.accounts,
		Transactions: m.transactions,
		Loans:        m.loans,
		Appeals:      m.appeals,
	}
}

func (m *mockRepos) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.accounts.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
	m.loans.AssertExpectations(t)
	m.appeals.AssertExpectations(t)
}

// fakeUnitOfWork runs the callback against mock repositories without a
// real database transaction.
type fakeUnitOfWork struct {
	repos *repository.Repos
}

func (f *fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos *repository.Repos) error) error {
	return fn(ctx, f.repos)
}
