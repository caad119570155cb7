package app

import (
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/repos"
)

type Repos struct {
	User            repos.UserRepo
	Guideline       repos.GuidelineRepo
	ComplianceCheck repos.ComplianceCheckRepo
	EngineCallLog   repos.EngineCallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Guideline:       repos.NewGuidelineRepo(db, log),
		ComplianceCheck: repos.NewComplianceCheckRepo(db, log),
		EngineCallLog:   repos.NewEngineCallLogRepo(db, log),
	}
}
