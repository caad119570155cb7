package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/compliance"
	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/repos"
	"github.com/adcomply/adcomply-backend/internal/types"
)

// CheckInput is one user submission.
type CheckInput struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	Platform    string `json:"platform"`
	// ImageURL is the optional attached image, gated by the image_attachment
	// capability.
	ImageURL string `json:"image_url,omitempty"`
}

// CheckOutput pairs the persisted record with the derived presentation
// fields, which are recomputed from the issue list on every read.
type CheckOutput struct {
	Check              *types.ComplianceCheck `json:"check"`
	Result             *compliance.Result     `json:"result"`
	CriticalCount      int                    `json:"critical_count"`
	WarningCount       int                    `json:"warning_count"`
	DefaultExpandIndex int                    `json:"default_expand_index"`
}

// AnalysisService runs the full pipeline for one submission: compose request,
// call the engine, normalize, persist exactly once. Concurrent duplicate
// submissions from one user are not serialized or deduplicated here; each
// produces its own row.
type AnalysisService interface {
	RunCheck(ctx context.Context, userID uuid.UUID, planKey string, input CheckInput) (*CheckOutput, error)
	GetCheck(ctx context.Context, userID, id uuid.UUID) (*CheckOutput, error)
	ListChecks(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ComplianceCheck, error)
	DeleteCheck(ctx context.Context, userID, id uuid.UUID) error
	UpdateNotes(ctx context.Context, userID, id uuid.UUID, notes string) (*types.ComplianceCheck, error)
}

type analysisService struct {
	db  *gorm.DB
	log *logger.Logger

	guidelineRepo repos.GuidelineRepo
	checkRepo     repos.ComplianceCheckRepo

	engine      ComplianceEngine
	entitlement EntitlementService
	usage       UsageService
}

func NewAnalysisService(
	db *gorm.DB,
	baseLog *logger.Logger,
	guidelineRepo repos.GuidelineRepo,
	checkRepo repos.ComplianceCheckRepo,
	engine ComplianceEngine,
	entitlement EntitlementService,
	usage UsageService,
) AnalysisService {
	return &analysisService{
		db:            db,
		log:           baseLog.With("service", "AnalysisService"),
		guidelineRepo: guidelineRepo,
		checkRepo:     checkRepo,
		engine:        engine,
		entitlement:   entitlement,
		usage:         usage,
	}
}

func (s *analysisService) RunCheck(ctx context.Context, userID uuid.UUID, planKey string, input CheckInput) (*CheckOutput, error) {
	contentType, err := compliance.NormalizeContentType(input.ContentType)
	if err != nil {
		return nil, err
	}

	// The corpus fetch and the entitlement/usage lookups are independent
	// reads, so they run concurrently.
	var (
		guidelines []*types.Guideline
		ent        Entitlement
		used       int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var gErr error
		guidelines, gErr = s.guidelineRepo.ListAll(gctx, nil)
		return gErr
	})
	g.Go(func() error {
		var eErr error
		ent, eErr = s.entitlement.Resolve(gctx, userID, planKey)
		if eErr != nil {
			return eErr
		}
		used, eErr = s.usage.MonthlyCount(gctx, userID)
		return eErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if contentType == compliance.ContentTypeImage && !ent.ImageAttachment {
		return nil, fmt.Errorf("%w: image attachment requires a higher plan", compliance.ErrFeatureNotEntitled)
	}
	if ent.MonthlyCheckLimit > 0 && used >= ent.MonthlyCheckLimit {
		return nil, fmt.Errorf("%w: %d of %d checks used", compliance.ErrCheckLimitExceeded, used, ent.MonthlyCheckLimit)
	}

	req, err := compliance.BuildRequest(input.Content, contentType, input.Platform, guidelines)
	if err != nil {
		return nil, err
	}

	raw, err := s.analyzeWithRetry(ctx, userID, req, input.ImageURL)
	if err != nil {
		return nil, err
	}

	result, err := compliance.Normalize(raw)
	if err != nil {
		return nil, err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("serialize verdict: %w", err)
	}

	row := &types.ComplianceCheck{
		ID:              uuid.New(),
		UserID:          userID,
		ContentText:     input.Content,
		ContentType:     string(contentType),
		Platform:        strings.TrimSpace(input.Platform),
		OverallStatus:   string(result.OverallStatus),
		ComplianceScore: result.Score(),
		ResultJSON:      datatypes.JSON(resultJSON),
	}
	saved, err := s.checkRepo.Create(ctx, nil, row)
	if err != nil {
		return nil, fmt.Errorf("persist check: %w", err)
	}

	if _, err := s.usage.Increment(ctx, userID); err != nil {
		s.log.Warn("usage increment failed after check", "error", err)
	}

	return outputFor(saved, result), nil
}

// analyzeWithRetry applies the propagation policy: timeouts and
// unavailability get exactly one automatic retry with unchanged input;
// contract violations and input errors are terminal.
func (s *analysisService) analyzeWithRetry(ctx context.Context, userID uuid.UUID, req *compliance.AnalysisRequest, imageURL string) (*compliance.RawResponse, error) {
	raw, err := s.engine.Analyze(ctx, userID, req, imageURL)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, compliance.ErrEngineTimeout) && !errors.Is(err, compliance.ErrEngineUnavailable) {
		return nil, err
	}
	s.log.Warn("engine call failed, retrying once", "user_id", userID.String(), "error", err)
	return s.engine.Analyze(ctx, userID, req, imageURL)
}

func (s *analysisService) GetCheck(ctx context.Context, userID, id uuid.UUID) (*CheckOutput, error) {
	row, err := s.checkRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: check %s", compliance.ErrNotFound, id)
	}
	result, err := decodeResult(row)
	if err != nil {
		return nil, err
	}
	return outputFor(row, result), nil
}

func (s *analysisService) ListChecks(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ComplianceCheck, error) {
	return s.checkRepo.ListByUser(ctx, nil, userID, limit)
}

func (s *analysisService) DeleteCheck(ctx context.Context, userID, id uuid.UUID) error {
	return s.checkRepo.DeleteByID(ctx, nil, userID, id)
}

func (s *analysisService) UpdateNotes(ctx context.Context, userID, id uuid.UUID, notes string) (*types.ComplianceCheck, error) {
	matched, err := s.checkRepo.UpdateNotes(ctx, nil, userID, id, notes)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, fmt.Errorf("%w: check %s", compliance.ErrNotFound, id)
	}
	return s.checkRepo.GetByID(ctx, nil, userID, id)
}

func decodeResult(row *types.ComplianceCheck) (*compliance.Result, error) {
	var result compliance.Result
	if err := json.Unmarshal(row.ResultJSON, &result); err != nil {
		return nil, fmt.Errorf("decode stored verdict: %w", err)
	}
	return &result, nil
}

func outputFor(row *types.ComplianceCheck, result *compliance.Result) *CheckOutput {
	return &CheckOutput{
		Check:              row,
		Result:             result,
		CriticalCount:      result.CriticalCount(),
		WarningCount:       result.WarningCount(),
		DefaultExpandIndex: result.DefaultExpandIndex(),
	}
}
