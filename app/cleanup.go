package app

import (
	"context"
	"time"

	"gatehouse/services/logging"
	"gatehouse/services/token"
	"gatehouse/session"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const cleanupInterval = time.Hour

// startCleanup sweeps expired tokens and sessions in the background for the
// lifetime of the application.
func startCleanup(lc fx.Lifecycle, tokens *token.Service, sessions *session.Service, logger *logging.Service) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cleanupInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if err := tokens.CleanupExpired(ctx); err != nil {
							logger.Warn("token cleanup failed", zap.Error(err))
						}
						if err := sessions.CleanupExpiredSessions(ctx); err != nil {
							logger.Warn("session cleanup failed", zap.Error(err))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
