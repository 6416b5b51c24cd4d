package session

import (
	"time"
)

// UserSession is the audit record for an established session, keyed by the
// scs session token.
type UserSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"-" gorm:"size:500"`
	Device    string    `json:"device" gorm:"size:120"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
