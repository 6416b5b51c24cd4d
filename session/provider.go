package session

import (
	"fmt"

	"gatehouse/config"

	"github.com/alexedwards/scs/v2"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideStore(cfg *config.Config, db *gorm.DB) (scs.Store, error) {
	switch cfg.Session.Store {
	case "memory":
		return NewMemoryStore(), nil
	case "database":
		return NewDatabaseStore(db)
	default:
		return nil, fmt.Errorf("unsupported session store: %s (supported: memory, database)", cfg.Session.Store)
	}
}

var Module = fx.Options(
	fx.Provide(ProvideStore),
	fx.Provide(NewManager),
	fx.Provide(NewSessionService),
	fx.Provide(NewSigner),
)
