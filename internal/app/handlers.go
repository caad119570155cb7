package app

import (
	"github.com/adcomply/adcomply-backend/internal/handlers"
	"github.com/adcomply/adcomply-backend/internal/platform/logger"
)

type Handlers struct {
	Compliance  *handlers.ComplianceHandler
	Guideline   *handlers.GuidelineHandler
	Entitlement *handlers.EntitlementHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Compliance:  handlers.NewComplianceHandler(log, services.Analysis, services.Rewrite, services.Export, services.Entitlement),
		Guideline:   handlers.NewGuidelineHandler(log, services.Guideline),
		Entitlement: handlers.NewEntitlementHandler(log, services.Entitlement, services.Usage),
	}
}
