package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/services"
)

type GuidelineHandler struct {
	log          *logger.Logger
	guidelineSvc services.GuidelineService
}

func NewGuidelineHandler(log *logger.Logger, guidelineSvc services.GuidelineService) *GuidelineHandler {
	return &GuidelineHandler{
		log:          log.With("handler", "GuidelineHandler"),
		guidelineSvc: guidelineSvc,
	}
}

// GET /api/guidelines
func (h *GuidelineHandler) ListGuidelines(c *gin.Context) {
	rows, err := h.guidelineSvc.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"guidelines": rows})
}
