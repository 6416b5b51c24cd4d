package auth

import (
	"gatehouse/config"
	"gatehouse/services/logging"
	"gatehouse/services/mail"
	"gatehouse/services/token"
	"gatehouse/services/user"
	"gatehouse/session"

	"go.uber.org/fx"
)

func ProvideAuthService(cfg *config.Config, users *user.Service, tokens *token.Service, mailService *mail.Service, signer *session.Signer, logger *logging.Service) *Service {
	return NewService(cfg, users, tokens, mailService, signer, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideAuthService),
)
