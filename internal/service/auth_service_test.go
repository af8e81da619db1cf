package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"moneta/internal/auth"
	"moneta/internal/errors"
	"moneta/internal/model"
)

func newAuthService(repos *mockRepos, tokenStore *MockTokenStore) AuthService {
	jwtService := auth.NewJWTService("test-secret")
	return NewAuthService(&fakeUnitOfWork{repos: repos.bundle()}, repos.users, repos.appeals, jwtService, tokenStore)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		setupMock     func(*mockRepos)
		expectedError error
	}{
		{
			name:     "successful registration creates user and account",
			username: "alice",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Username == "alice" && u.Role == model.RoleClient && u.PasswordHash != ""
				})).Return(nil)
				m.accounts.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
					return a.OwnerUsername == "alice" && a.Type == "Checking" && validateLuhn(a.CardNumber)
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate username",
			username: "alice",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
			expectedError: errors.ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newMockRepos()
			tt.setupMock(repos)

			service := newAuthService(repos, new(MockTokenStore))
			user, err := service.Register(context.Background(), tt.username, "password123", "Alice", "alice@example.com")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEqual(t, "password123", user.PasswordHash)
			}
			repos.assertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		password      string
		setupMock     func(*mockRepos, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			password: "password123",
			setupMock: func(m *mockRepos, ts *MockTokenStore) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: string(hashed),
					Role:         model.RoleClient,
				}, nil)
				ts.On("StoreRefreshToken", mock.Anything, mock.Anything, "alice", model.RoleClient, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			password: "nope",
			setupMock: func(m *mockRepos, ts *MockTokenStore) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			password: "password123",
			setupMock: func(m *mockRepos, ts *MockTokenStore) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "blocked user is turned away",
			password: "password123",
			setupMock: func(m *mockRepos, ts *MockTokenStore) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: string(hashed),
					Role:         model.RoleClient,
					IsBlocked:    true,
				}, nil)
			},
			expectedError: errors.ErrUserBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newMockRepos()
			tokenStore := new(MockTokenStore)
			tt.setupMock(repos, tokenStore)

			service := newAuthService(repos, tokenStore)
			accessToken, refreshToken, user, err := service.Login(context.Background(), "alice", tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
			}
			repos.assertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_FileAppeal(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		password      string
		setupMock     func(*mockRepos)
		expectedError error
	}{
		{
			name:     "blocked user files an appeal",
			password: "password123",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: string(hashed),
					IsBlocked:    true,
				}, nil)
				m.appeals.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Appeal) bool {
					return a.Username == "alice" && a.Status == model.AppealStatusOpen
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unblocked user cannot appeal",
			password: "password123",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "wrong password",
			password: "nope",
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: string(hashed),
					IsBlocked:    true,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newMockRepos()
			tt.setupMock(repos)

			service := newAuthService(repos, new(MockTokenStore))
			appeal, err := service.FileAppeal(context.Background(), "alice", tt.password, "please unblock me")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, appeal)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, appeal)
				assert.Equal(t, "please unblock me", appeal.Message)
			}
			repos.assertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	repos := newMockRepos()
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(&fakeUnitOfWork{repos: repos.bundle()}, repos.users, repos.appeals, jwtService, tokenStore)

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken("alice", model.RoleClient)
	assert.NoError(t, err)
	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return("alice", model.RoleClient, nil)

	accessToken, err := service.RefreshToken(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	_, err = service.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	tokenStore.AssertExpectations(t)
}
