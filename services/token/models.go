package token

import (
	"time"
)

// VerificationToken proves control of an email address. At most one live
// row exists per email; reissuing replaces the previous one.
type VerificationToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (VerificationToken) TableName() string {
	return "verification_tokens"
}

func (t *VerificationToken) Expired() bool {
	return t.ExpiresAt.Before(time.Now())
}

type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *PasswordResetToken) Expired() bool {
	return t.ExpiresAt.Before(time.Now())
}

// TwoFactorToken carries a short-lived 6-digit code sent out-of-band.
type TwoFactorToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Token     string    `json:"-" gorm:"index;size:16;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (TwoFactorToken) TableName() string {
	return "two_factor_tokens"
}

func (t *TwoFactorToken) Expired() bool {
	return t.ExpiresAt.Before(time.Now())
}

// TwoFactorConfirmation is a one-shot marker that the current login attempt
// passed its second factor. It is consumed at sign-in, not a session.
type TwoFactorConfirmation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (TwoFactorConfirmation) TableName() string {
	return "two_factor_confirmations"
}
