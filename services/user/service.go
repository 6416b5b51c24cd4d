package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatehouse/services/logging"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("linked account not found")
	ErrEmailTaken      = errors.New("email already in use")
)

type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup by email failed", zap.Error(err))
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	return &u, nil
}

func (s *Service) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("user lookup by id failed", zap.Error(err), zap.Uint("user_id", id))
		return nil, fmt.Errorf("failed to look up user by id: %w", err)
	}
	return &u, nil
}

func (s *Service) Create(ctx context.Context, u *User) error {
	if u.Role == "" {
		u.Role = RoleUser
	}

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		s.logger.Error("user creation failed", zap.Error(err), zap.String("email", u.Email))
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	return nil
}

// Update describes a partial user update. Nil fields are left untouched.
type Update struct {
	Name             *string
	Password         *string
	TwoFactorEnabled *bool
}

func (s *Service) Update(ctx context.Context, id uint, update Update) error {
	values := map[string]any{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Password != nil {
		values["password"] = *update.Password
	}
	if update.TwoFactorEnabled != nil {
		values["two_factor_enabled"] = *update.TwoFactorEnabled
	}

	if len(values) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		s.logger.Error("user update failed", zap.Error(result.Error), zap.Uint("user_id", id))
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// MarkEmailVerified records the verification time and adopts the verified
// email, which also completes any email change that was pending on it.
func (s *Service) MarkEmailVerified(ctx context.Context, id uint, email string) error {
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"email_verified_at": time.Now(),
		"email":             email,
	})
	if result.Error != nil {
		s.logger.Error("email verification update failed", zap.Error(result.Error), zap.Uint("user_id", id))
		return fmt.Errorf("failed to mark email verified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	s.logger.Info("email verified", zap.Uint("user_id", id), zap.String("email", email))
	return nil
}

func (s *Service) SetPassword(ctx context.Context, id uint, hash string) error {
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", hash)
	if result.Error != nil {
		s.logger.Error("password update failed", zap.Error(result.Error), zap.Uint("user_id", id))
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (s *Service) FindAccountByUserID(ctx context.Context, userID uint) (*LinkedAccount, error) {
	var account LinkedAccount
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("linked account lookup failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, fmt.Errorf("failed to look up linked account: %w", err)
	}
	return &account, nil
}

func (s *Service) LinkAccount(ctx context.Context, account *LinkedAccount) error {
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		s.logger.Error("account linking failed", zap.Error(err), zap.Uint("user_id", account.UserID))
		return fmt.Errorf("failed to link account: %w", err)
	}
	return nil
}
