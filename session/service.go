package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mileusna/useragent"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// Service keeps the UserSession audit trail alongside the scs store.
type Service struct {
	db      *gorm.DB
	manager *Manager
}

func NewSessionService(db *gorm.DB, manager *Manager) *Service {
	return &Service{
		db:      db,
		manager: manager,
	}
}

func (s *Service) TrackSession(ctx context.Context, userID uint, token, ipAddress, userAgent string, expiresAt time.Time) error {
	record := UserSession{
		UserID:    userID,
		Token:     token,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Device:    summarizeDevice(userAgent),
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to track session: %w", err)
	}
	return nil
}

func (s *Service) GetUserSessions(ctx context.Context, userID uint) ([]UserSession, error) {
	var sessions []UserSession
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// RevokeSession drops the audit row and destroys the backing scs session, so
// the revoked cookie stops working immediately.
func (s *Service) RevokeSession(ctx context.Context, userID, sessionID uint) error {
	var record UserSession
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", sessionID, userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to look up session: %w", err)
	}

	if err := s.manager.Store.Delete(record.Token); err != nil {
		return fmt.Errorf("failed to delete session from store: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&record).Error; err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}
	return nil
}

func (s *Service) RemoveSessionByToken(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&UserSession{}).Error; err != nil {
		return fmt.Errorf("failed to remove session record: %w", err)
	}
	return nil
}

func (s *Service) CleanupExpiredSessions(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&UserSession{}).Error; err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}
	return nil
}

func summarizeDevice(rawUserAgent string) string {
	if rawUserAgent == "" {
		return "unknown"
	}

	ua := useragent.Parse(rawUserAgent)

	parts := []string{}
	if ua.Name != "" {
		parts = append(parts, ua.Name)
	}
	if ua.OS != "" {
		parts = append(parts, "on "+ua.OS)
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, " ")
}
