package session

import (
	"net/http"

	"gatehouse/config"

	"github.com/alexedwards/scs/v2"
)

type Manager struct {
	*scs.SessionManager
	config config.SessionConfig
}

func NewManager(cfg *config.Config, store scs.Store) *Manager {
	manager := scs.New()
	manager.Store = store
	manager.Lifetime = cfg.Session.MaxAge
	manager.Cookie.Name = cfg.Session.CookieName
	manager.Cookie.Secure = cfg.Session.CookieSecure
	manager.Cookie.HttpOnly = cfg.Session.CookieHTTPOnly
	manager.Cookie.SameSite = parseSameSite(cfg.Session.CookieSameSite)

	return &Manager{
		SessionManager: manager,
		config:         cfg.Session,
	}
}

func parseSameSite(value string) http.SameSite {
	switch value {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
