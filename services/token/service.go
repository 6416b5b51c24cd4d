package token

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gatehouse/config"
	"gatehouse/services/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound        = errors.New("token not found")
	ErrConfirmationNotFound = errors.New("two factor confirmation not found")
)

type Service struct {
	config *config.Config
	db     *gorm.DB
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
	}
}

// GenerateVerificationToken replaces any outstanding verification token for
// the email. Delete and insert run in one transaction so concurrent reissues
// cannot leave two live tokens; the unique email index backstops the rest.
func (s *Service) GenerateVerificationToken(ctx context.Context, email string) (*VerificationToken, error) {
	record := &VerificationToken{
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.config.Auth.VerificationExpiry),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		s.logger.Error("failed to issue verification token", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to issue verification token: %w", err)
	}

	s.logger.Info("verification token issued",
		zap.String("email", email),
		zap.Time("expires_at", record.ExpiresAt))
	return record, nil
}

// GeneratePasswordResetToken replaces any outstanding reset token for the email.
func (s *Service) GeneratePasswordResetToken(ctx context.Context, email string) (*PasswordResetToken, error) {
	record := &PasswordResetToken{
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.config.Auth.PasswordResetExpiry),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		s.logger.Error("failed to issue password reset token", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to issue password reset token: %w", err)
	}

	s.logger.Info("password reset token issued",
		zap.String("email", email),
		zap.Time("expires_at", record.ExpiresAt))
	return record, nil
}

// GenerateTwoFactorToken replaces any outstanding code for the email with a
// fresh 6-digit numeric code on the short two-factor expiry.
func (s *Service) GenerateTwoFactorToken(ctx context.Context, email string) (*TwoFactorToken, error) {
	code, err := generateNumericCode()
	if err != nil {
		return nil, err
	}

	record := &TwoFactorToken{
		Email:     email,
		Token:     code,
		ExpiresAt: time.Now().Add(s.config.Auth.TwoFactorExpiry),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&TwoFactorToken{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		s.logger.Error("failed to issue two factor token", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to issue two factor token: %w", err)
	}

	s.logger.Info("two factor token issued",
		zap.String("email", email),
		zap.Time("expires_at", record.ExpiresAt))
	return record, nil
}

func generateNumericCode() (string, error) {
	// 100000..999999 inclusive
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate two factor code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *Service) GetVerificationTokenByToken(ctx context.Context, value string) (*VerificationToken, error) {
	var record VerificationToken
	if err := s.db.WithContext(ctx).Where("token = ?", value).First(&record).Error; err != nil {
		return nil, s.lookupError("verification", err)
	}
	return &record, nil
}

func (s *Service) GetVerificationTokenByEmail(ctx context.Context, email string) (*VerificationToken, error) {
	var record VerificationToken
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&record).Error; err != nil {
		return nil, s.lookupError("verification", err)
	}
	return &record, nil
}

func (s *Service) GetPasswordResetTokenByToken(ctx context.Context, value string) (*PasswordResetToken, error) {
	var record PasswordResetToken
	if err := s.db.WithContext(ctx).Where("token = ?", value).First(&record).Error; err != nil {
		return nil, s.lookupError("password reset", err)
	}
	return &record, nil
}

func (s *Service) GetPasswordResetTokenByEmail(ctx context.Context, email string) (*PasswordResetToken, error) {
	var record PasswordResetToken
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&record).Error; err != nil {
		return nil, s.lookupError("password reset", err)
	}
	return &record, nil
}

func (s *Service) GetTwoFactorTokenByEmail(ctx context.Context, email string) (*TwoFactorToken, error) {
	var record TwoFactorToken
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&record).Error; err != nil {
		return nil, s.lookupError("two factor", err)
	}
	return &record, nil
}

// lookupError keeps absence and infrastructure failure distinct: callers can
// errors.Is against ErrTokenNotFound and treat everything else as an outage.
func (s *Service) lookupError(kind string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTokenNotFound
	}
	s.logger.Error("token lookup failed", zap.String("kind", kind), zap.Error(err))
	return fmt.Errorf("failed to look up %s token: %w", kind, err)
}

func (s *Service) ConsumeVerificationToken(ctx context.Context, record *VerificationToken) error {
	if err := s.db.WithContext(ctx).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to consume verification token: %w", err)
	}
	return nil
}

func (s *Service) ConsumePasswordResetToken(ctx context.Context, record *PasswordResetToken) error {
	if err := s.db.WithContext(ctx).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to consume password reset token: %w", err)
	}
	return nil
}

func (s *Service) ConsumeTwoFactorToken(ctx context.Context, record *TwoFactorToken) error {
	if err := s.db.WithContext(ctx).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to consume two factor token: %w", err)
	}
	return nil
}

func (s *Service) GetTwoFactorConfirmation(ctx context.Context, userID uint) (*TwoFactorConfirmation, error) {
	var record TwoFactorConfirmation
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfirmationNotFound
		}
		s.logger.Error("two factor confirmation lookup failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, fmt.Errorf("failed to look up two factor confirmation: %w", err)
	}
	return &record, nil
}

// CreateTwoFactorConfirmation replaces any prior confirmation for the user.
func (s *Service) CreateTwoFactorConfirmation(ctx context.Context, userID uint) (*TwoFactorConfirmation, error) {
	record := &TwoFactorConfirmation{UserID: userID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&TwoFactorConfirmation{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		s.logger.Error("failed to create two factor confirmation", zap.Error(err), zap.Uint("user_id", userID))
		return nil, fmt.Errorf("failed to create two factor confirmation: %w", err)
	}

	return record, nil
}

// ConsumeTwoFactorConfirmation deletes the one-shot confirmation, reporting
// whether one existed.
func (s *Service) ConsumeTwoFactorConfirmation(ctx context.Context, userID uint) (bool, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&TwoFactorConfirmation{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to consume two factor confirmation: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CleanupExpired removes expired rows across all three token tables.
func (s *Service) CleanupExpired(ctx context.Context) error {
	now := time.Now()

	for _, model := range []any{&VerificationToken{}, &PasswordResetToken{}, &TwoFactorToken{}} {
		result := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(model)
		if result.Error != nil {
			return fmt.Errorf("failed to cleanup expired tokens: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			s.logger.Info("expired tokens cleaned up", zap.Int64("tokens_removed", result.RowsAffected))
		}
	}

	return nil
}
