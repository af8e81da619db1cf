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

func newAdminService(repos *mockRepos) AdminService {
	return NewAdminService(&fakeUnitOfWork{repos: repos.bundle()}, repos.users, repos.appeals, nil)
}

func TestAdminService_SetBlockStatus(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		blocked       bool
		setupMock     func(*mockRepos)
		expectedError error
	}{
		{
			name:     "block a client",
			username: "alice",
			blocked:  true,
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username: "alice", Role: model.RoleClient,
				}, nil)
				m.users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.IsBlocked
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "admins cannot be blocked",
			username: "admin1",
			blocked:  true,
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "admin1").Return(&model.User{
					Username: "admin1", Role: model.RoleAdmin,
				}, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "blocking an already blocked user is a no-op",
			username: "alice",
			blocked:  true,
			setupMock: func(m *mockRepos) {
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username: "alice", Role: model.RoleClient, IsBlocked: true,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown user",
			username: "ghost",
			blocked:  true,
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

			service := newAdminService(repos)
			err := service.SetBlockStatus(context.Background(), tt.username, tt.blocked)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			repos.assertExpectations(t)
		})
	}
}

func TestAdminService_ResolveAppeal(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*mockRepos)
		expectedError error
	}{
		{
			name: "resolving unblocks the user in the same transaction",
			setupMock: func(m *mockRepos) {
				m.appeals.On("FindByID", mock.Anything, uint(4)).Return(&model.Appeal{
					ID: 4, Username: "alice", Status: model.AppealStatusOpen,
				}, nil)
				m.users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					Username: "alice", Role: model.RoleClient, IsBlocked: true,
				}, nil)
				m.appeals.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Appeal) bool {
					return a.Status == model.AppealStatusResolved
				})).Return(nil)
				m.users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return !u.IsBlocked
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "already resolved appeal is a no-op",
			setupMock: func(m *mockRepos) {
				m.appeals.On("FindByID", mock.Anything, uint(4)).Return(&model.Appeal{
					ID: 4, Username: "alice", Status: model.AppealStatusResolved,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "unknown appeal",
			setupMock: func(m *mockRepos) {
				m.appeals.On("FindByID", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrAppealNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newMockRepos()
			tt.setupMock(repos)

			service := newAdminService(repos)
			err := service.ResolveAppeal(context.Background(), 4)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			repos.assertExpectations(t)
		})
	}
}

func TestAdminService_ListOpenAppeals(t *testing.T) {
	repos := newMockRepos()
	open := []model.Appeal{{ID: 1, Username: "alice", Status: model.AppealStatusOpen}}
	repos.appeals.On("ListOpen", mock.Anything).Return(open, nil)

	service := newAdminService(repos)
	appeals, err := service.ListOpenAppeals(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, open, appeals)
	repos.assertExpectations(t)
}
