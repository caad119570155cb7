package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/compliance"
	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/repos"
)

// ExportService renders a saved check as a PDF report. The pdf_export gate is
// enforced here, at the service boundary: a UI that disables the control is a
// hint, not a security boundary.
type ExportService interface {
	ExportPDF(ctx context.Context, userID, checkID uuid.UUID, ent Entitlement) ([]byte, error)
}

type exportService struct {
	db  *gorm.DB
	log *logger.Logger

	checkRepo repos.ComplianceCheckRepo
}

func NewExportService(db *gorm.DB, baseLog *logger.Logger, checkRepo repos.ComplianceCheckRepo) ExportService {
	return &exportService{
		db:        db,
		log:       baseLog.With("service", "ExportService"),
		checkRepo: checkRepo,
	}
}

func (s *exportService) ExportPDF(ctx context.Context, userID, checkID uuid.UUID, ent Entitlement) ([]byte, error) {
	if !ent.PDFExport {
		return nil, fmt.Errorf("%w: pdf export requires plan %s", compliance.ErrFeatureNotEntitled, PlanUltra)
	}

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

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Compliance Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Compliance Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Check ID: %s", row.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Created: %s", row.CreatedAt.Format("2006-01-02 15:04 MST")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Platform: %s", orDash(row.Platform)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Status: %s    Score: %d/100", statusLabel(result.OverallStatus), row.ComplianceScore), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, result.Summary, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Submitted Content", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, row.ContentText, "", "L", false)
	pdf.Ln(2)

	if len(result.Issues) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Findings (%d critical, %d warning)", result.CriticalCount(), result.WarningCount()), "", 1, "L", false, 0, "")
		for i, issue := range result.Issues {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 6, fmt.Sprintf("%d. [%s] %s", i+1, strings.ToUpper(string(issue.Severity)), orDash(issue.GuidelineReference)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, issue.Finding, "", "L", false)
			if issue.Recommendation != "" {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.MultiCell(0, 5, "Recommendation: "+issue.Recommendation, "", "L", false)
			}
			pdf.Ln(1)
		}
	}

	if row.Notes != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, row.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func statusLabel(s compliance.Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
