package user

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a local account. Password is nil for accounts that only ever
// signed in through an OAuth provider.
type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"size:255;not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password         *string    `json:"-" gorm:"size:255"`
	Role             Role       `json:"role" gorm:"size:10;not null;default:'user'"`
	EmailVerifiedAt  *time.Time `json:"email_verified_at,omitempty"`
	TwoFactorEnabled bool       `json:"two_factor_enabled" gorm:"default:false"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) EmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// LinkedAccount ties a User to an external OAuth provider identity.
type LinkedAccount struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	Provider          string    `json:"provider" gorm:"size:64;not null;uniqueIndex:idx_provider_identity"`
	ProviderAccountID string    `json:"provider_account_id" gorm:"size:255;not null;uniqueIndex:idx_provider_identity"`
	CreatedAt         time.Time `json:"created_at"`
}

func (LinkedAccount) TableName() string {
	return "linked_accounts"
}
