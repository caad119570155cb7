package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/types"
)

type EngineCallLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.EngineCallLog) (*types.EngineCallLog, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.EngineCallLog, error)
}

type engineCallLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEngineCallLogRepo(db *gorm.DB, baseLog *logger.Logger) EngineCallLogRepo {
	return &engineCallLogRepo{db: db, log: baseLog.With("repo", "EngineCallLogRepo")}
}

func (r *engineCallLogRepo) Create(ctx context.Context, tx *gorm.DB, row *types.EngineCallLog) (*types.EngineCallLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *engineCallLogRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.EngineCallLog, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.EngineCallLog
	if userID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
