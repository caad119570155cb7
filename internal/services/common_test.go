package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/compliance"
	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testCorpus() []*types.Guideline {
	return []*types.Guideline{
		{ID: "fin-001", Category: "financial", RuleText: "No guaranteed returns."},
		{ID: "hea-001", Category: "health", RuleText: "No unsubstantiated health claims."},
	}
}

type fakeEngine struct {
	mu           sync.Mutex
	analyzeCalls int
	analyzeErrs  []error
	raw          *compliance.RawResponse

	rewriteCalls int
	rewriteErr   error
	options      []compliance.RewrittenPost
}

func (f *fakeEngine) Analyze(ctx context.Context, userID uuid.UUID, req *compliance.AnalysisRequest, imageURL string) (*compliance.RawResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzeCalls++
	if len(f.analyzeErrs) > 0 {
		err := f.analyzeErrs[0]
		f.analyzeErrs = f.analyzeErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.raw, nil
}

func (f *fakeEngine) Rewrite(ctx context.Context, userID uuid.UUID, content string, issues []compliance.Issue, count int) ([]compliance.RewrittenPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewriteCalls++
	if f.rewriteErr != nil {
		return nil, f.rewriteErr
	}
	return f.options, nil
}

type fakeGuidelineRepo struct {
	guidelines []*types.Guideline
	err        error
}

func (f *fakeGuidelineRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Guideline, error) {
	return f.guidelines, f.err
}

func (f *fakeGuidelineRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Guideline, error) {
	return f.guidelines, f.err
}

func (f *fakeGuidelineRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.guidelines)), f.err
}

type fakeCheckRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*types.ComplianceCheck
	creates int
}

func newFakeCheckRepo() *fakeCheckRepo {
	return &fakeCheckRepo{rows: map[uuid.UUID]*types.ComplianceCheck{}}
}

func (f *fakeCheckRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ComplianceCheck) (*types.ComplianceCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeCheckRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.ComplianceCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return nil, nil
	}
	return row, nil
}

func (f *fakeCheckRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ComplianceCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.ComplianceCheck
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeCheckRepo) DeleteByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if ok && row.UserID == userID {
		delete(f.rows, id)
	}
	return nil
}

func (f *fakeCheckRepo) UpdateNotes(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, notes string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return 0, nil
	}
	row.Notes = notes
	return 1, nil
}

type fakeEntitlementService struct {
	ent Entitlement
	err error
}

func (f *fakeEntitlementService) Resolve(ctx context.Context, userID uuid.UUID, sessionPlanKey string) (Entitlement, error) {
	return f.ent, f.err
}

type fakeUsageService struct {
	mu         sync.Mutex
	count      int
	increments int
}

func (f *fakeUsageService) MonthlyCount(ctx context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, nil
}

func (f *fakeUsageService) Increment(ctx context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	f.increments++
	return f.count, nil
}

func storedCheck(t *testing.T, userID uuid.UUID, result *compliance.Result, content string) *types.ComplianceCheck {
	t.Helper()
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	return &types.ComplianceCheck{
		ID:              uuid.New(),
		UserID:          userID,
		ContentText:     content,
		ContentType:     "text",
		OverallStatus:   string(result.OverallStatus),
		ComplianceScore: result.Score(),
		ResultJSON:      datatypes.JSON(raw),
	}
}
