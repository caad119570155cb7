package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adcomply/adcomply-backend/internal/handlers"
	"github.com/adcomply/adcomply-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware     *middleware.AuthMiddleware
	ComplianceHandler  *handlers.ComplianceHandler
	GuidelineHandler   *handlers.GuidelineHandler
	EntitlementHandler *handlers.EntitlementHandler

	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.GET("/guidelines", cfg.GuidelineHandler.ListGuidelines)
		api.GET("/entitlement", cfg.EntitlementHandler.GetEntitlement)

		api.POST("/compliance/checks", cfg.ComplianceHandler.RunCheck)
		api.GET("/compliance/checks", cfg.ComplianceHandler.ListChecks)
		api.GET("/compliance/checks/:id", cfg.ComplianceHandler.GetCheck)
		api.DELETE("/compliance/checks/:id", cfg.ComplianceHandler.DeleteCheck)
		api.PATCH("/compliance/checks/:id/notes", cfg.ComplianceHandler.UpdateNotes)
		api.POST("/compliance/checks/:id/rewrites", cfg.ComplianceHandler.GenerateRewrites)
		api.GET("/compliance/checks/:id/export", cfg.ComplianceHandler.ExportCheck)
	}

	return router
}
