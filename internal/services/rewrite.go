package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/compliance"
	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/repos"
)

// RewriteService generates alternative compliant versions for a saved check.
// Rewrites are ephemeral: nothing is persisted, a failed generation leaves
// the stored verdict untouched, and calling again with the same check simply
// replaces whatever the caller held before.
type RewriteService interface {
	Generate(ctx context.Context, userID, checkID uuid.UUID) ([]compliance.RewrittenPost, error)
}

type rewriteService struct {
	db  *gorm.DB
	log *logger.Logger

	checkRepo repos.ComplianceCheckRepo
	engine    ComplianceEngine

	// optionCount is configuration, not a structural assumption; callers
	// must handle any returned length.
	optionCount int
}

func NewRewriteService(db *gorm.DB, baseLog *logger.Logger, checkRepo repos.ComplianceCheckRepo, engine ComplianceEngine, optionCount int) RewriteService {
	if optionCount <= 0 {
		optionCount = 3
	}
	return &rewriteService{
		db:          db,
		log:         baseLog.With("service", "RewriteService"),
		checkRepo:   checkRepo,
		engine:      engine,
		optionCount: optionCount,
	}
}

func (s *rewriteService) Generate(ctx context.Context, userID, checkID uuid.UUID) ([]compliance.RewrittenPost, error) {
	row, err := s.checkRepo.GetByID(ctx, nil, userID, checkID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: check %s", compliance.ErrNotFound, checkID)
	}

	result, err := decodeResult(row)
	if err != nil {
		return nil, err
	}
	if len(result.Issues) == 0 {
		return nil, fmt.Errorf("%w: verdict has no issues", compliance.ErrNothingToRewrite)
	}

	options, err := s.engine.Rewrite(ctx, userID, row.ContentText, result.Issues, s.optionCount)
	if err != nil {
		if errors.Is(err, compliance.ErrNothingToRewrite) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", compliance.ErrRewriteGenerationFailed, err)
	}
	return options, nil
}
