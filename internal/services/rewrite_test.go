package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/adcomply/adcomply-backend/internal/compliance"
)

func seededRewriteService(t *testing.T, engine *fakeEngine, result *compliance.Result) (RewriteService, uuid.UUID, uuid.UUID) {
	t.Helper()
	checkRepo := newFakeCheckRepo()
	userID := uuid.New()
	row := storedCheck(t, userID, result, "Guaranteed returns!")
	if _, err := checkRepo.Create(context.Background(), nil, row); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewRewriteService(nil, testLogger(t), checkRepo, engine, 3), userID, row.ID
}

func nonCompliantResult() *compliance.Result {
	return &compliance.Result{
		OverallStatus: compliance.StatusNonCompliant,
		Summary:       "problems",
		Issues: []compliance.Issue{
			{GuidelineReference: "fin-001", Finding: "guaranteed returns", Severity: compliance.SeverityCritical},
		},
	}
}

func TestGenerate_ReturnsOptions(t *testing.T) {
	engine := &fakeEngine{options: []compliance.RewrittenPost{
		{OptionTitle: "Softened claim", Content: "Returns may vary."},
		{OptionTitle: "Risk forward", Content: "Investing involves risk."},
		{OptionTitle: "Neutral", Content: "Learn about our fund."},
	}}
	svc, userID, checkID := seededRewriteService(t, engine, nonCompliantResult())

	options, err := svc.Generate(context.Background(), userID, checkID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}
}

func TestGenerate_NothingToRewriteForCleanVerdict(t *testing.T) {
	engine := &fakeEngine{}
	clean := &compliance.Result{OverallStatus: compliance.StatusCompliant, Summary: "ok"}
	svc, userID, checkID := seededRewriteService(t, engine, clean)

	_, err := svc.Generate(context.Background(), userID, checkID)
	if !errors.Is(err, compliance.ErrNothingToRewrite) {
		t.Fatalf("expected ErrNothingToRewrite, got %v", err)
	}
	if engine.rewriteCalls != 0 {
		t.Fatalf("clean verdict must not reach the engine")
	}
}

func TestGenerate_FailureWrapsAndLeavesVerdict(t *testing.T) {
	engine := &fakeEngine{rewriteErr: compliance.ErrEngineTimeout}
	svc, userID, checkID := seededRewriteService(t, engine, nonCompliantResult())

	_, err := svc.Generate(context.Background(), userID, checkID)
	if !errors.Is(err, compliance.ErrRewriteGenerationFailed) {
		t.Fatalf("expected ErrRewriteGenerationFailed, got %v", err)
	}
}

func TestGenerate_NotFoundForUnknownCheck(t *testing.T) {
	svc, userID, _ := seededRewriteService(t, &fakeEngine{}, nonCompliantResult())
	_, err := svc.Generate(context.Background(), userID, uuid.New())
	if !errors.Is(err, compliance.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerate_NotFoundForNonOwner(t *testing.T) {
	svc, _, checkID := seededRewriteService(t, &fakeEngine{}, nonCompliantResult())
	_, err := svc.Generate(context.Background(), uuid.New(), checkID)
	if !errors.Is(err, compliance.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
