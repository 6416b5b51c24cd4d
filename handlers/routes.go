package handlers

import (
	jwtmw "gatehouse/middleware/jwt"
	"gatehouse/middleware/rolegate"
	"gatehouse/server"
	"gatehouse/services/jwt"
	"gatehouse/services/user"
	"gatehouse/session"
)

// RegisterRoutes mounts the whole HTTP surface. The session middleware wraps
// everything; the API group additionally accepts Bearer tokens.
func RegisterRoutes(srv *server.Server, manager *session.Manager, authHandler *AuthHandler, apiHandler *APIHandler, jwtService *jwt.Service) {
	srv.Use(session.Middleware(manager))

	authGroup := srv.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)
	authGroup.GET("/new-verification", authHandler.NewVerification)
	authGroup.POST("/reset", authHandler.Reset)
	authGroup.POST("/new-password", authHandler.NewPassword)
	authGroup.POST("/logout", authHandler.Logout)

	srv.Patch("/settings", authHandler.Settings)

	api := srv.Group("/api", jwtmw.OptionalJWT(jwtService))
	api.GET("/admin", apiHandler.Admin, rolegate.Require(user.RoleAdmin))
	api.POST("/token", apiHandler.IssueToken)
	api.GET("/sessions", apiHandler.ListSessions)
	api.DELETE("/sessions/:id", apiHandler.RevokeSession)
}
