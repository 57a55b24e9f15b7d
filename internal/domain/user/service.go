// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/pkg/auth"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// StateListener receives "signed in as X" (identity set) and "signed out"
// (nil identity) notifications for a browsing session.
type StateListener interface {
	AuthStateChanged(sessionID string, identity *session.Identity)
}

// Service is the authentication collaborator
type Service struct {
	repo      Repository
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
	denylist  TokenDenylist
	listener  StateListener
	validate  *validator.Validate
	config    *config.Config
	logger    *logrus.Logger
}

// NewService creates a new user service
func NewService(repo Repository, tokens *auth.JWTManager, denylist TokenDenylist, listener StateListener, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		repo:      repo,
		passwords: auth.NewPasswordManager(cfg),
		tokens:    tokens,
		denylist:  denylist,
		listener:  listener,
		validate:  validator.New(),
		config:    cfg,
		logger:    logger,
	}
}

// SignUpRequest represents user registration data
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required,max=200"`
}

// SignInRequest represents user login data
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *session.Identity `json:"user"`
	AccessToken string            `json:"access_token"`
	ExpiresIn   int64             `json:"expires_in"`
}

// SignUp creates an account and signs the session in as it
func (s *Service) SignUp(ctx context.Context, sessionID string, req *SignUpRequest) (*AuthResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid sign up request: %w", err)
	}

	if err := s.passwords.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:    normalizeEmail(req.Email),
		Password: hashedPassword,
		FullName: req.FullName,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", u.ID).Info("user signed up")

	return s.signIn(ctx, sessionID, u)
}

// SignIn checks credentials and signs the session in
func (s *Service) SignIn(ctx context.Context, sessionID string, req *SignInRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid sign in request: %w", err)
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := s.passwords.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.signIn(ctx, sessionID, u)
}

// SignOut revokes the bearer token, if any, and signs the session out.
// The session is signed out even when the token cannot be revoked.
func (s *Service) SignOut(ctx context.Context, sessionID, token string) error {
	defer s.listener.AuthStateChanged(sessionID, nil)

	if token == "" {
		return nil
	}

	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		// already unusable
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Resolve turns a bearer token into the identity it was issued for
func (s *Service) Resolve(ctx context.Context, token string) (*session.Identity, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &session.Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
	}, nil
}

func (s *Service) signIn(ctx context.Context, sessionID string, u *User) (*AuthResponse, error) {
	token, _, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.repo.UpdateLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		s.logger.WithError(err).WithField("user_id", u.ID).Warn("failed to record last login")
	}

	identity := u.Identity()
	s.listener.AuthStateChanged(sessionID, identity)

	return &AuthResponse{
		User:        identity,
		AccessToken: token,
		ExpiresIn:   int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
