package auth

import (
	"context"
	"errors"

	"gatehouse/config"
	"gatehouse/services/logging"
	"gatehouse/services/token"
	"gatehouse/services/user"
	"gatehouse/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Mailer is the outbound email surface the flows depend on. Send failures
// propagate to the caller untouched; there is no retry here.
type Mailer interface {
	SendVerificationEmail(email, token string) error
	SendPasswordResetEmail(email, token string) error
	SendTwoFactorTokenEmail(email, code string) error
}

// SessionSigner is the external session library boundary: credential
// verification and session establishment happen behind it.
type SessionSigner interface {
	SignIn(ctx context.Context, req session.SignInRequest) error
	SignOut(ctx context.Context) error
}

type Service struct {
	config *config.Config
	users  *user.Service
	tokens *token.Service
	mailer Mailer
	signer SessionSigner
	logger *logging.Service
}

func NewService(cfg *config.Config, users *user.Service, tokens *token.Service, mailer Mailer, signer SessionSigner, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		users:  users,
		tokens: tokens,
		mailer: mailer,
		signer: signer,
		logger: logger,
	}
}

// Login walks the credential flow: unverified accounts are bounced back to
// email confirmation before any credential check, two-factor accounts must
// present a live code, and only then is sign-in delegated to the session
// signer. The returned error is non-nil only for failures the signer raised
// outside its own auth-error kind; those are re-raised to the handler.
func (s *Service) Login(ctx context.Context, req LoginRequest) (Result, error) {
	if err := s.validateLogin(req); err != nil {
		return fail(MsgInvalidFields), nil
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return fail(MsgEmailNotFound), nil
		}
		s.logger.Error("login user lookup failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	if !existing.HasPassword() {
		// OAuth-only account; credentials cannot apply.
		return fail(MsgEmailNotFound), nil
	}

	if !existing.EmailVerified() {
		verification, err := s.tokens.GenerateVerificationToken(ctx, existing.Email)
		if err != nil {
			return fail(MsgSomethingWentWrong), nil
		}
		if err := s.mailer.SendVerificationEmail(existing.Email, verification.Token); err != nil {
			return Result{}, err
		}
		return succeed(MsgConfirmationSent), nil
	}

	if existing.TwoFactorEnabled {
		if req.Code == "" {
			twoFactor, err := s.tokens.GenerateTwoFactorToken(ctx, existing.Email)
			if err != nil {
				return fail(MsgSomethingWentWrong), nil
			}
			if err := s.mailer.SendTwoFactorTokenEmail(twoFactor.Email, twoFactor.Token); err != nil {
				return Result{}, err
			}
			return Result{TwoFactor: true}, nil
		}

		twoFactor, err := s.tokens.GetTwoFactorTokenByEmail(ctx, existing.Email)
		if err != nil {
			if errors.Is(err, token.ErrTokenNotFound) {
				return fail(MsgInvalidCode), nil
			}
			s.logger.Error("two factor token lookup failed", zap.Error(err))
			return fail(MsgSomethingWentWrong), nil
		}
		if twoFactor.Token != req.Code {
			return fail(MsgInvalidCode), nil
		}
		if twoFactor.Expired() {
			return fail(MsgCodeExpired), nil
		}

		if err := s.tokens.ConsumeTwoFactorToken(ctx, twoFactor); err != nil {
			return fail(MsgSomethingWentWrong), nil
		}
		if _, err := s.tokens.CreateTwoFactorConfirmation(ctx, existing.ID); err != nil {
			return fail(MsgSomethingWentWrong), nil
		}
	}

	if err := s.signer.SignIn(ctx, session.SignInRequest{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}); err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			switch authErr.Type {
			case session.ErrTypeCredentialsSignin:
				return fail(MsgInvalidCredentials), nil
			default:
				return fail(MsgSomethingWentWrong), nil
			}
		}
		return Result{}, err
	}

	return succeed(MsgLoggedIn), nil
}

func (s *Service) Logout(ctx context.Context) (Result, error) {
	if err := s.signer.SignOut(ctx); err != nil {
		return Result{}, err
	}
	return succeed(MsgLoggedOut), nil
}

// Register creates an unverified account and kicks off email verification.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Result, error) {
	if err := s.validateRegister(req); err != nil {
		return fail(MsgInvalidFields), nil
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return fail(MsgEmailAlreadyInUse), nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		s.logger.Error("register user lookup failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}
	hashed := string(hash)

	newUser := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: &hashed,
		Role:     user.RoleUser,
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		return fail(MsgSomethingWentWrong), nil
	}

	verification, err := s.tokens.GenerateVerificationToken(ctx, req.Email)
	if err != nil {
		return fail(MsgSomethingWentWrong), nil
	}
	if err := s.mailer.SendVerificationEmail(req.Email, verification.Token); err != nil {
		return Result{}, err
	}

	return succeed(MsgConfirmationSent), nil
}

// NewVerification consumes a verification token: it marks the owning user
// verified, adopts the token's email, and deletes the token.
func (s *Service) NewVerification(ctx context.Context, tokenValue string) (Result, error) {
	record, err := s.tokens.GetVerificationTokenByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, token.ErrTokenNotFound) {
			return fail(MsgTokenNotFound), nil
		}
		s.logger.Error("verification token lookup failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	if record.Expired() {
		return fail(MsgTokenExpired), nil
	}

	owner, err := s.users.FindByEmail(ctx, record.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return fail(MsgEmailNotFound), nil
		}
		s.logger.Error("verification user lookup failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	if err := s.users.MarkEmailVerified(ctx, owner.ID, record.Email); err != nil {
		return fail(MsgSomethingWentWrong), nil
	}
	if err := s.tokens.ConsumeVerificationToken(ctx, record); err != nil {
		return fail(MsgSomethingWentWrong), nil
	}

	return succeed(MsgEmailVerified), nil
}

// Reset issues a password reset token for a known email.
func (s *Service) Reset(ctx context.Context, req ResetRequest) (Result, error) {
	if err := s.validateReset(req); err != nil {
		return fail(MsgInvalidFields), nil
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return fail(MsgEmailNotRegistered), nil
		}
		s.logger.Error("reset user lookup failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	reset, err := s.tokens.GeneratePasswordResetToken(ctx, req.Email)
	if err != nil {
		return fail(MsgSomethingWentWrong), nil
	}
	if err := s.mailer.SendPasswordResetEmail(reset.Email, reset.Token); err != nil {
		return Result{}, err
	}

	return succeed(MsgResetEmailSent), nil
}

// NewPassword redeems a reset token and stores the new password hash. The
// token survives every failure path and is deleted only after the password
// is persisted.
func (s *Service) NewPassword(ctx context.Context, req NewPasswordRequest, tokenValue string) (Result, error) {
	if tokenValue == "" {
		return fail(MsgMissingToken), nil
	}

	if err := s.validateNewPassword(req); err != nil {
		return fail(MsgInvalidFields), nil
	}

	record, err := s.tokens.GetPasswordResetTokenByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, token.ErrTokenNotFound) {
			return fail(MsgInvalidToken), nil
		}
		s.logger.Error("reset token lookup failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	if record.Expired() {
		return fail(MsgTokenExpired), nil
	}

	owner, err := s.users.FindByEmail(ctx, record.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return fail(MsgEmailNotFound), nil
		}
		s.logger.Error("reset user lookup failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return fail(MsgSomethingWentWrong), nil
	}

	if err := s.users.SetPassword(ctx, owner.ID, string(hash)); err != nil {
		return fail(MsgSomethingWentWrong), nil
	}
	if err := s.tokens.ConsumePasswordResetToken(ctx, record); err != nil {
		return fail(MsgSomethingWentWrong), nil
	}

	return succeed(MsgPasswordUpdated), nil
}
