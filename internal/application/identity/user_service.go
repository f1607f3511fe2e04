package identity

import (
	"context"
	"errors"
	"time"

	"github.com/colaai/backend/internal/domain/identity"
	"github.com/colaai/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer issues session tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *identity.User) (string, time.Time, error)
}

// UserService handles authentication and platform-level user queries.
type UserService struct {
	users  identity.UserRepository
	tokens TokenIssuer
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *identity.User
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password both map to Unauthorized so the response does not
// reveal which one failed.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if !user.VerifyPassword(password) {
		s.logger.Warn("Failed login attempt", zap.String("email", email))
		return nil, shared.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.users.Save(ctx, user); err != nil {
		// Login still succeeds; the timestamp is best-effort.
		s.logger.Warn("Failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// ListUsers returns all platform users. Callers own the decision of
// how to degrade when listing fails.
func (s *UserService) ListUsers(ctx context.Context) ([]identity.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}
