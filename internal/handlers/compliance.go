package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/requestdata"
	"github.com/adcomply/adcomply-backend/internal/services"
)

type ComplianceHandler struct {
	log         *logger.Logger
	analysisSvc services.AnalysisService
	rewriteSvc  services.RewriteService
	exportSvc   services.ExportService
	entitlement services.EntitlementService
}

func NewComplianceHandler(
	log *logger.Logger,
	analysisSvc services.AnalysisService,
	rewriteSvc services.RewriteService,
	exportSvc services.ExportService,
	entitlement services.EntitlementService,
) *ComplianceHandler {
	return &ComplianceHandler{
		log:         log.With("handler", "ComplianceHandler"),
		analysisSvc: analysisSvc,
		rewriteSvc:  rewriteSvc,
		exportSvc:   exportSvc,
		entitlement: entitlement,
	}
}

// POST /api/compliance/checks
func (h *ComplianceHandler) RunCheck(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing session"))
		return
	}

	var input services.CheckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}

	out, err := h.analysisSvc.RunCheck(c.Request.Context(), rd.UserID, rd.PlanKey, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/compliance/checks
func (h *ComplianceHandler) ListChecks(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing session"))
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &limit); err != nil || limit <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid limit %q", v))
			return
		}
	}

	rows, err := h.analysisSvc.ListChecks(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"checks": rows})
}

// GET /api/compliance/checks/:id
func (h *ComplianceHandler) GetCheck(c *gin.Context) {
	rd, id, ok := h.sessionAndID(c)
	if !ok {
		return
	}
	out, err := h.analysisSvc.GetCheck(c.Request.Context(), rd.UserID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, out)
}

// DELETE /api/compliance/checks/:id
func (h *ComplianceHandler) DeleteCheck(c *gin.Context) {
	rd, id, ok := h.sessionAndID(c)
	if !ok {
		return
	}
	if err := h.analysisSvc.DeleteCheck(c.Request.Context(), rd.UserID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PATCH /api/compliance/checks/:id/notes
func (h *ComplianceHandler) UpdateNotes(c *gin.Context) {
	rd, id, ok := h.sessionAndID(c)
	if !ok {
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}

	row, err := h.analysisSvc.UpdateNotes(c.Request.Context(), rd.UserID, id, body.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, row)
}

// POST /api/compliance/checks/:id/rewrites
func (h *ComplianceHandler) GenerateRewrites(c *gin.Context) {
	rd, id, ok := h.sessionAndID(c)
	if !ok {
		return
	}
	options, err := h.rewriteSvc.Generate(c.Request.Context(), rd.UserID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"rewrites": options})
}

// GET /api/compliance/checks/:id/export
func (h *ComplianceHandler) ExportCheck(c *gin.Context) {
	rd, id, ok := h.sessionAndID(c)
	if !ok {
		return
	}

	ent, err := h.entitlement.Resolve(c.Request.Context(), rd.UserID, rd.PlanKey)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pdfBytes, err := h.exportSvc.ExportPDF(c.Request.Context(), rd.UserID, id, ent)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=compliance-check-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *ComplianceHandler) sessionAndID(c *gin.Context) (*requestdata.RequestData, uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing session"))
		return nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid check id"))
		return nil, uuid.Nil, false
	}
	return rd, id, true
}
