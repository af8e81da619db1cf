package service

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"moneta/internal/errors"
	"moneta/internal/mailer"
	"moneta/internal/model"
	"moneta/internal/repository"
)

// AdminService handles administrator workflows: blocking users and
// resolving appeals.
type AdminService interface {
	// SetBlockStatus blocks or unblocks a user. Admins cannot be blocked.
	SetBlockStatus(ctx context.Context, username string, blocked bool) error
	// ResolveAppeal marks the appeal resolved and unblocks its user, atomically.
	ResolveAppeal(ctx context.Context, appealID uint) error
	ListUsers(ctx context.Context) ([]model.User, error)
	ListOpenAppeals(ctx context.Context) ([]model.Appeal, error)
}

type adminService struct {
	uow        repository.UnitOfWork
	userRepo   repository.UserRepository
	appealRepo repository.AppealRepository
	mailer     *mailer.Mailer
}

// NewAdminService creates a new admin service.
func NewAdminService(
	uow repository.UnitOfWork,
	userRepo repository.UserRepository,
	appealRepo repository.AppealRepository,
	m *mailer.Mailer,
) AdminService {
	return &adminService{
		uow:        uow,
		userRepo:   userRepo,
		appealRepo: appealRepo,
		mailer:     m,
	}
}

// SetBlockStatus flips a user's blocked flag. No other side effects.
func (s *adminService) SetBlockStatus(ctx context.Context, username string, blocked bool) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.Role == model.RoleAdmin {
		return errors.ErrForbidden
	}
	if user.IsBlocked == blocked {
		return nil
	}

	user.IsBlocked = blocked
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if err := s.mailer.SendBlockNotice(user.Email, blocked); err != nil {
		log.Printf("block notice mail: %v", err)
	}
	return nil
}

// ResolveAppeal resolves the appeal and clears the user's blocked flag
// as one combined transition.
func (s *adminService) ResolveAppeal(ctx context.Context, appealID uint) error {
	var email string
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		appeal, err := repos.Appeals.FindByID(ctx, appealID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAppealNotFound
			}
			return err
		}
		if appeal.Status == model.AppealStatusResolved {
			return nil
		}

		user, err := repos.Users.FindByUsername(ctx, appeal.Username)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return err
		}
		email = user.Email

		appeal.Status = model.AppealStatusResolved
		if err := repos.Appeals.Update(ctx, appeal); err != nil {
			return fmt.Errorf("update appeal: %w", err)
		}
		user.IsBlocked = false
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	if email != "" {
		if err := s.mailer.SendBlockNotice(email, false); err != nil {
			log.Printf("unblock notice mail: %v", err)
		}
	}
	return nil
}

// ListUsers returns every user for the admin dashboard.
func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// ListOpenAppeals returns unresolved appeals, oldest first.
func (s *adminService) ListOpenAppeals(ctx context.Context) ([]model.Appeal, error) {
	return s.appealRepo.ListOpen(ctx)
}
