package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatehouse/config"
	"gatehouse/database"
	"gatehouse/handlers"
	"gatehouse/openapi"
	"gatehouse/server"
	"gatehouse/services/auth"
	"gatehouse/services/jwt"
	"gatehouse/services/logging"
	"gatehouse/services/mail"
	"gatehouse/services/token"
	"gatehouse/services/user"
	"gatehouse/session"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// App bundles the fx application with lifecycle helpers.
type App struct {
	fx     *fx.App
	logger *logging.Service
}

// Models returns every persisted type the schema migrates.
func Models() []any {
	return []any{
		&user.User{},
		&user.LinkedAccount{},
		&token.VerificationToken{},
		&token.PasswordResetToken{},
		&token.TwoFactorToken{},
		&token.TwoFactorConfirmation{},
		&session.UserSession{},
	}
}

// New assembles the full application. A non-nil cfg overrides environment
// loading, which the tests rely on.
func New(cfg *config.Config) *App {
	app := &App{}

	app.fx = fx.New(
		config.NewProvider(cfg),
		logging.Module,
		fx.Supply(database.WithModels(Models()...)),
		database.Module,
		session.Module,
		user.Module,
		token.Module,
		mail.Module,
		jwt.Module,
		auth.Module,
		server.Module,
		handlers.Module,
		openapi.Module,
		fx.Invoke(startCleanup),
		fx.Populate(&app.logger),
		fx.WithLogger(func(logger *logging.Service) fxevent.Logger {
			if logger == nil || logger.Logger() == nil {
				return fxevent.NopLogger
			}
			return &fxevent.ZapLogger{Logger: logger.Logger()}
		}),
	)

	return app
}

func (a *App) Start(ctx context.Context) error {
	return a.fx.Start(ctx)
}

func (a *App) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.fx.Stop(ctx); err != nil {
		if a.logger != nil {
			a.logger.Error("failed to stop application gracefully")
		} else {
			log.Printf("failed to stop application gracefully: %v", err)
		}
	}
}

// Run starts the application and blocks until a termination signal.
func (a *App) Run() {
	if err := a.Start(context.Background()); err != nil {
		log.Fatalf("failed to start application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	if a.logger != nil {
		a.logger.Info("received shutdown signal, stopping gracefully")
	}

	a.Stop()
}
