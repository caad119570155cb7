package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/adcomply/adcomply-backend/internal/compliance"
)

func TestExportPDF_RequiresEntitlement(t *testing.T) {
	svc := NewExportService(nil, testLogger(t), newFakeCheckRepo())
	for _, plan := range []string{PlanFree, PlanProfessional, PlanProPlus} {
		_, err := svc.ExportPDF(context.Background(), uuid.New(), uuid.New(), ResolveEntitlement(plan))
		if !errors.Is(err, compliance.ErrFeatureNotEntitled) {
			t.Fatalf("plan %q: expected ErrFeatureNotEntitled, got %v", plan, err)
		}
	}
}

func TestExportPDF_ProducesDocument(t *testing.T) {
	checkRepo := newFakeCheckRepo()
	userID := uuid.New()
	row := storedCheck(t, userID, nonCompliantResult(), "Guaranteed returns!")
	row.Notes = "flagged by legal"
	if _, err := checkRepo.Create(context.Background(), nil, row); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewExportService(nil, testLogger(t), checkRepo)
	pdf, err := svc.ExportPDF(context.Background(), userID, row.ID, ResolveEntitlement(PlanUltra))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q...", pdf[:min(len(pdf), 8)])
	}
}

func TestExportPDF_NotFoundForNonOwner(t *testing.T) {
	checkRepo := newFakeCheckRepo()
	owner := uuid.New()
	row := storedCheck(t, owner, nonCompliantResult(), "content")
	if _, err := checkRepo.Create(context.Background(), nil, row); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewExportService(nil, testLogger(t), checkRepo)
	_, err := svc.ExportPDF(context.Background(), uuid.New(), row.ID, ResolveEntitlement(PlanUltra))
	if !errors.Is(err, compliance.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
