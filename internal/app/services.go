package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/platform/openai"
	"github.com/adcomply/adcomply-backend/internal/services"
)

type Services struct {
	Engine      services.ComplianceEngine
	Analysis    services.AnalysisService
	Rewrite     services.RewriteService
	Entitlement services.EntitlementService
	Usage       services.UsageService
	Export      services.ExportService
	Guideline   services.GuidelineService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	aiClient, err := openai.NewClient(log)
	if err != nil {
		return Services{}, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	engine := services.NewComplianceEngine(db, log, aiClient, reposet.EngineCallLog, cfg.EngineTimeout, cfg.EngineModel)
	entitlement := services.NewEntitlementService(db, log, reposet.User)
	usage := services.NewUsageService(log, rdb)
	analysis := services.NewAnalysisService(db, log, reposet.Guideline, reposet.ComplianceCheck, engine, entitlement, usage)
	rewrite := services.NewRewriteService(db, log, reposet.ComplianceCheck, engine, cfg.RewriteOptionCount)
	export := services.NewExportService(db, log, reposet.ComplianceCheck)
	guideline := services.NewGuidelineService(db, log, reposet.Guideline)

	return Services{
		Engine:      engine,
		Analysis:    analysis,
		Rewrite:     rewrite,
		Entitlement: entitlement,
		Usage:       usage,
		Export:      export,
		Guideline:   guideline,
	}, nil
}
