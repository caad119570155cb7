package app

import (
	"github.com/gin-gonic/gin"

	"github.com/adcomply/adcomply-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:     middleware.Auth,
		ComplianceHandler:  handlers.Compliance,
		GuidelineHandler:   handlers.Guideline,
		EntitlementHandler: handlers.Entitlement,
		CORSOrigins:        cfg.CORSOrigins,
	})
}
