package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer signs bearer tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(userID, email, name string) (string, error)
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates a new user. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	taken, err := s.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		s.logger.WarnContext(ctx, "registration with existing email", "email", input.Email)
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), constants.BcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "registered user", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// ValidateCredentials returns the user owning email if password matches.
// Unknown emails and wrong passwords produce the same error.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WarnContext(ctx, "invalid login attempt: unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "invalid login attempt: wrong password", "email", email)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken signs an access token with claims {sub, email, name}.
func (s *AuthService) IssueToken(userID, email, name string) (string, error) {
	token, err := s.tokens.Issue(userID, email, name)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the authenticated user and their access token.
type LoginResult struct {
	User        *models.User
	AccessToken string
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.ValidateCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "issued access token", "user_id", user.ID)
	return &LoginResult{User: user, AccessToken: token}, nil
}
