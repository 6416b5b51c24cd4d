package testutils

import (
	"testing"
	"time"

	"gatehouse/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	if len(models) > 0 {
		err = db.AutoMigrate(models...)
		require.NoError(t, err)
	}

	return db
}

func GetTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "gatehouse test"
	cfg.App.URL = "http://localhost:8080"
	cfg.Server.Host = "localhost"
	cfg.Server.Port = "0"
	cfg.Log.Level = "error"
	cfg.Log.Format = "console"
	cfg.Log.Output = "stdout"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = ":memory:"
	cfg.Database.AutoMigrate = true
	cfg.Mail.Host = "localhost"
	cfg.Mail.Port = 1025
	cfg.Mail.Encryption = "none"
	cfg.Mail.FromAddress = "test@example.com"
	cfg.Mail.FromName = "gatehouse test"
	cfg.Session.Store = "memory"
	cfg.Auth.BcryptCost = 4
	cfg.Auth.MinPasswordLength = 6
	cfg.Auth.MinNameLength = 3
	cfg.Auth.VerificationExpiry = time.Hour
	cfg.Auth.PasswordResetExpiry = time.Hour
	cfg.Auth.TwoFactorExpiry = 15 * time.Minute
	cfg.Session.CookieName = "gatehouse_session"
	cfg.Session.MaxAge = time.Hour
	cfg.JWT.SecretKey = "test-secret-key-not-for-production"
	cfg.JWT.Issuer = "gatehouse"
	cfg.JWT.AccessExpiry = 15 * time.Minute
	return cfg
}
