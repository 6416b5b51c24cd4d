package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatehouse/services/logging"
	"gatehouse/services/token"
	"gatehouse/services/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthErrorType string

const (
	// ErrTypeCredentialsSignin covers wrong email, missing local password and
	// wrong password alike; callers must not be able to tell them apart.
	ErrTypeCredentialsSignin AuthErrorType = "CredentialsSignin"
	// ErrTypeAccessDenied is raised when a two-factor account reaches sign-in
	// without a consumed confirmation.
	ErrTypeAccessDenied AuthErrorType = "AccessDenied"
)

// AuthError is the only error kind Signer raises for authentication
// outcomes. Anything else escaping SignIn is an infrastructure failure.
type AuthError struct {
	Type AuthErrorType
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Type)
}

type SignInRequest struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// Signer verifies credentials and establishes the session. It owns the final
// step of login; all flow decisions before it live in the auth orchestrator.
type Signer struct {
	manager  *Manager
	users    *user.Service
	tokens   *token.Service
	sessions *Service
	logger   *logging.Service
}

func NewSigner(manager *Manager, users *user.Service, tokens *token.Service, sessions *Service, logger *logging.Service) *Signer {
	return &Signer{
		manager:  manager,
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *Signer) SignIn(ctx context.Context, req SignInRequest) error {
	account, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return &AuthError{Type: ErrTypeCredentialsSignin}
		}
		return err
	}

	if !account.HasPassword() {
		return &AuthError{Type: ErrTypeCredentialsSignin}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("credential verification failed", zap.String("email", req.Email))
		return &AuthError{Type: ErrTypeCredentialsSignin}
	}

	if account.TwoFactorEnabled {
		consumed, err := s.tokens.ConsumeTwoFactorConfirmation(ctx, account.ID)
		if err != nil {
			return err
		}
		if !consumed {
			s.logger.Warn("sign-in without two factor confirmation", zap.Uint("user_id", account.ID))
			return &AuthError{Type: ErrTypeAccessDenied}
		}
	}

	if err := s.manager.RenewToken(ctx); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}

	s.manager.Put(ctx, userIDKey, account.ID)
	s.manager.Put(ctx, roleKey, string(account.Role))
	s.manager.Put(ctx, authenticatedKey, true)

	if s.sessions != nil {
		sessionToken := s.manager.Token(ctx)
		if sessionToken != "" {
			expiresAt := time.Now().Add(s.manager.config.MaxAge)
			if err := s.sessions.TrackSession(ctx, account.ID, sessionToken, req.IPAddress, req.UserAgent, expiresAt); err != nil {
				s.logger.Warn("session tracking failed", zap.Error(err), zap.Uint("user_id", account.ID))
			}
		}
	}

	s.logger.Info("user signed in", zap.Uint("user_id", account.ID))
	return nil
}

func (s *Signer) SignOut(ctx context.Context) error {
	if s.sessions != nil {
		if sessionToken := s.manager.Token(ctx); sessionToken != "" {
			_ = s.sessions.RemoveSessionByToken(ctx, sessionToken)
		}
	}

	s.manager.Remove(ctx, userIDKey)
	s.manager.Remove(ctx, roleKey)
	s.manager.Remove(ctx, authenticatedKey)

	if err := s.manager.Destroy(ctx); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
