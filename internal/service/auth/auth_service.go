// internal/service/auth/auth_service.go
package auth

import (
	"context"
	"fmt"
	"time"

	"alamin-service/internal/domain/user"
	xerrors "alamin-service/internal/pkg/errors"
	"alamin-service/internal/pkg/jwt"
	"alamin-service/internal/pkg/session"
	"alamin-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo       *postgres.UserRepository
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	logger         *zap.Logger
}

func NewAuthService(
	userRepo *postgres.UserRepository,
	jwtManager *jwt.Manager,
	sessionManager *session.Manager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string     `json:"token"`
	User      user.Actor `json:"user"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Login checks credentials and opens a session. A wrong username and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	token, jti, err := s.jwtManager.Issue(u.Username, u.Name, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.sessionManager.Create(ctx, u.Username, jti, session.Data{
		Username: u.Username,
		Role:     string(u.Role),
		LoginAt:  time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
	)

	return &LoginResult{
		Token:     token,
		User:      user.Actor{Username: u.Username, Name: u.Name, Role: u.Role},
		ExpiresAt: time.Now().Add(s.jwtManager.TTL()),
	}, nil
}

// ValidateToken verifies the token signature and checks that its session is
// still live. A logged-out token fails here even before it expires.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verify(token)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	if _, err := s.sessionManager.Get(ctx, claims.Username, claims.ID); err != nil {
		return nil, err
	}
	return claims, nil
}

// Logout revokes the session behind one token.
func (s *AuthService) Logout(ctx context.Context, username, jti string) error {
	if err := s.sessionManager.Delete(ctx, username, jti); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("username", username))
	return nil
}

// EnsureSeedManager creates the bootstrap manager account when the users
// table is empty. Called on startup.
func (s *AuthService) EnsureSeedManager(ctx context.Context, username, name, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check user count: %w", err)
	}
	if count > 0 {
		return nil
	}

	if username == "" || password == "" {
		s.logger.Warn("no users exist and no seed manager configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	u := &user.User{
		Username:     username,
		Name:         name,
		Role:         user.RoleManager,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create seed manager: %w", err)
	}

	s.logger.Info("seed manager account created", zap.String("username", username))
	return nil
}
