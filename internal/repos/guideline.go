package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/types"
)

// GuidelineRepo reads the regulatory corpus. There is no write path here:
// the corpus is loaded by the rules tooling and treated as immutable input.
type GuidelineRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Guideline, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Guideline, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type guidelineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGuidelineRepo(db *gorm.DB, baseLog *logger.Logger) GuidelineRepo {
	return &guidelineRepo{db: db, log: baseLog.With("repo", "GuidelineRepo")}
}

func (r *guidelineRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Guideline, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Guideline
	if err := t.WithContext(ctx).
		Order("category ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *guidelineRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Guideline, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Guideline
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *guidelineRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&types.Guideline{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
