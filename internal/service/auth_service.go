// Package service contains the application's business operations.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"
	"github.com/oykukmnGlad/ROOTEAM/internal/models"
	"github.com/oykukmnGlad/ROOTEAM/internal/observability"
	"github.com/oykukmnGlad/ROOTEAM/internal/repository"
	"github.com/oykukmnGlad/ROOTEAM/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates an account. The password is stored exactly as given.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	ctx, span := observability.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		observability.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		observability.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		observability.AuthAttempts.WithLabelValues("register", "error").Inc()
		return nil, err
	}
	if existing != nil {
		observability.AuthAttempts.WithLabelValues("register", "taken").Inc()
		return nil, models.NewUsernameTakenError(username)
	}

	user := &models.User{Username: username, Password: password}
	// The unique index settles concurrent registrations of the same name.
	if err := s.userRepo.Create(ctx, user); err != nil {
		outcome := "error"
		if models.HasCode(err, models.CodeUsernameTaken) {
			outcome = "taken"
		}
		observability.AuthAttempts.WithLabelValues("register", outcome).Inc()
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))
	observability.AuthAttempts.WithLabelValues("register", "success").Inc()
	middleware.Logger.InfoContext(ctx, "user registered", slog.Uint64("user_id", uint64(user.ID)))
	return user, nil
}

// Login returns the user whose stored password equals password. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	ctx, span := observability.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		observability.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		observability.AuthAttempts.WithLabelValues("login", "error").Inc()
		return nil, err
	}
	if user == nil || user.Password != password {
		observability.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	observability.AuthAttempts.WithLabelValues("login", "success").Inc()
	return user, nil
}

// GetUser loads the user behind a session or token.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
