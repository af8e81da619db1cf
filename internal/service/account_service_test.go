package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"moneta/internal/errors"
	"moneta/internal/model"
)

func TestAccountService_CreateAccount(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		accountType   string
		setupMock     func(*mockRepos)
		expectedType  string
		expectedError error
	}{
		{
			name:        "new account gets card details",
			username:    "alice",
			accountType: "Savings",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
				m.accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
					return a.OwnerUsername == "alice" && validateLuhn(a.CardNumber) && len(a.CVV) == 3
				})).Return(nil)
			},
			expectedType: "Savings",
		},
		{
			name:        "empty type defaults to checking",
			username:    "alice",
			accountType: "",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
				m.accounts.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
			},
			expectedType: "Checking",
		},
		{
			name:        "unknown user",
			username:    "ghost",
			accountType: "Checking",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newMockRepos()
			tt.setupMock(repos)

			service := NewAccountService(repos.accounts, repos.users, nil)
			account, err := service.CreateAccount(context.Background(), tt.username, tt.accountType)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, account)
				assert.Equal(t, tt.expectedType, account.Type)
			}
			repos.assertExpectations(t)
		})
	}
}

func TestAccountService_GetAccount(t *testing.T) {
	repos := newMockRepos()
	repos.accounts.On("FindByNumber", mock.Anything, "KZ2001").Return(&model.Account{Number: "KZ2001"}, nil)
	repos.accounts.On("FindByNumber", mock.Anything, "KZ9999").Return(nil, gorm.ErrRecordNotFound)

	service := NewAccountService(repos.accounts, repos.users, nil)

	account, err := service.GetAccount(context.Background(), "KZ2001")
	assert.NoError(t, err)
	assert.Equal(t, "KZ2001", account.Number)

	_, err = service.GetAccount(context.Background(), "KZ9999")
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)
}
