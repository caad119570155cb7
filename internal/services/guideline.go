package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/repos"
	"github.com/adcomply/adcomply-backend/internal/types"
)

// GuidelineService exposes the read-only rule corpus, ordered by category.
type GuidelineService interface {
	List(ctx context.Context) ([]*types.Guideline, error)
}

type guidelineService struct {
	db  *gorm.DB
	log *logger.Logger

	guidelineRepo repos.GuidelineRepo
}

func NewGuidelineService(db *gorm.DB, baseLog *logger.Logger, guidelineRepo repos.GuidelineRepo) GuidelineService {
	return &guidelineService{
		db:            db,
		log:           baseLog.With("service", "GuidelineService"),
		guidelineRepo: guidelineRepo,
	}
}

func (s *guidelineService) List(ctx context.Context) ([]*types.Guideline, error) {
	return s.guidelineRepo.ListAll(ctx, nil)
}
