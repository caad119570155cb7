package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/types"
)

// ComplianceCheckRepo persists completed checks. Get and delete filter on
// user_id in the query itself so a cross-user id can never match a row.
type ComplianceCheckRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ComplianceCheck) (*types.ComplianceCheck, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.ComplianceCheck, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ComplianceCheck, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
	UpdateNotes(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, notes string) (int64, error)
}

type complianceCheckRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComplianceCheckRepo(db *gorm.DB, baseLog *logger.Logger) ComplianceCheckRepo {
	return &complianceCheckRepo{db: db, log: baseLog.With("repo", "ComplianceCheckRepo")}
}

func (r *complianceCheckRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ComplianceCheck) (*types.ComplianceCheck, error) {
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

func (r *complianceCheckRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.ComplianceCheck, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var out []*types.ComplianceCheck
	if err := t.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *complianceCheckRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ComplianceCheck, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ComplianceCheck
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

// DeleteByID is idempotent: deleting an id that matches no owned row is not
// an error.
func (r *complianceCheckRepo) DeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.ComplianceCheck{}).Error
}

// UpdateNotes changes the one mutable field of a saved check. Returns the
// number of rows matched so the caller can distinguish a missing record.
func (r *complianceCheckRepo) UpdateNotes(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, notes string) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(ctx).
		Model(&types.ComplianceCheck{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"notes":      notes,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
