package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"moneta/internal/auth"
	"moneta/internal/errors"
	"moneta/internal/model"
	"moneta/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = stderrors.New("invalid username or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = stderrors.New("invalid or expired refresh token")
)

// AuthService handles registration, sign-in, and the appeal path for
// blocked users.
type AuthService interface {
	// Register creates a client user; clients get one Checking account
	// in the same transaction.
	Register(ctx context.Context, username, password, name, email string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	// FileAppeal records a blocked user's appeal after re-verifying credentials.
	FileAppeal(ctx context.Context, username, password, message string) (*model.Appeal, error)
}

type authService struct {
	uow        repository.UnitOfWork
	userRepo   repository.UserRepository
	appealRepo repository.AppealRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	uow repository.UnitOfWork,
	userRepo repository.UserRepository,
	appealRepo repository.AppealRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		uow:        uow,
		userRepo:   userRepo,
		appealRepo: appealRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new client with a hashed password and one account.
func (s *authService) Register(ctx context.Context, username, password, name, email string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, errors.ErrDuplicateUsername
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleClient,
		Name:         name,
		Email:        email,
	}
	err = s.uow.WithTransaction(ctx, func(ctx context.Context, repos *repository.Repos) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		card := generateCardDetails(time.Now())
		return repos.Accounts.Create(ctx, &model.Account{
			OwnerUsername: username,
			Type:          "Checking",
			CardNumber:    card.Number,
			CVV:           card.CVV,
			ExpiryDate:    card.Expiry,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
// Blocked users are turned away with ErrUserBlocked; the boundary
// points them at the appeal endpoint.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return "", "", nil, errors.ErrUserBlocked
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.Username, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.Username, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.Username, user.Role, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUsername, storedRole, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUsername != claims.Username || storedRole != claims.Role {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.Username, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// FileAppeal lets a blocked user ask an admin for review. Credentials
// are re-verified since blocked users hold no session.
func (s *authService) FileAppeal(ctx context.Context, username, password, message string) (*model.Appeal, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsBlocked {
		return nil, errors.ErrForbidden
	}

	appeal := &model.Appeal{
		Username: username,
		Message:  message,
		Status:   model.AppealStatusOpen,
	}
	if err := s.appealRepo.Create(ctx, appeal); err != nil {
		return nil, fmt.Errorf("create appeal: %w", err)
	}
	return appeal, nil
}
