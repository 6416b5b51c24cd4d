package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig      `envPrefix:"GATEHOUSE_APP_"`
	Server   ServerConfig   `envPrefix:"GATEHOUSE_SERVER_"`
	Log      LogConfig      `envPrefix:"GATEHOUSE_LOG_"`
	Database DatabaseConfig `envPrefix:"GATEHOUSE_DB_"`
	Mail     MailConfig     `envPrefix:"GATEHOUSE_MAIL_"`
	Auth     AuthConfig     `envPrefix:"GATEHOUSE_AUTH_"`
	Session  SessionConfig  `envPrefix:"GATEHOUSE_SESSION_"`
	JWT      JWTConfig      `envPrefix:"GATEHOUSE_JWT_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"gatehouse"`
	URL  string `env:"URL" envDefault:"http://localhost:8080"`
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"8080"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"gatehouse.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type MailConfig struct {
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        int    `env:"PORT" envDefault:"587"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
	Encryption  string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress string `env:"FROM_ADDRESS"`
	FromName    string `env:"FROM_NAME"`
}

type AuthConfig struct {
	BcryptCost          int           `env:"BCRYPT_COST" envDefault:"10"`
	MinPasswordLength   int           `env:"MIN_PASSWORD_LENGTH" envDefault:"6"`
	MinNameLength       int           `env:"MIN_NAME_LENGTH" envDefault:"3"`
	VerificationExpiry  time.Duration `env:"VERIFICATION_EXPIRY" envDefault:"1h"`
	PasswordResetExpiry time.Duration `env:"PASSWORD_RESET_EXPIRY" envDefault:"1h"`
	TwoFactorExpiry     time.Duration `env:"TWO_FACTOR_EXPIRY" envDefault:"15m"`
}

type SessionConfig struct {
	CookieName     string        `env:"COOKIE_NAME" envDefault:"gatehouse_session"`
	MaxAge         time.Duration `env:"MAX_AGE" envDefault:"24h"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string        `env:"COOKIE_SAME_SITE" envDefault:"lax"`
	Store          string        `env:"STORE" envDefault:"database"`
}

type JWTConfig struct {
	SecretKey    string        `env:"SECRET_KEY"`
	Issuer       string        `env:"ISSUER" envDefault:"gatehouse"`
	AccessExpiry time.Duration `env:"ACCESS_EXPIRY" envDefault:"15m"`
}

func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	return env.Parse(cfg)
}
