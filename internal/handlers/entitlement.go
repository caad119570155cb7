package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/requestdata"
	"github.com/adcomply/adcomply-backend/internal/services"
)

type EntitlementHandler struct {
	log            *logger.Logger
	entitlementSvc services.EntitlementService
	usageSvc       services.UsageService
}

func NewEntitlementHandler(log *logger.Logger, entitlementSvc services.EntitlementService, usageSvc services.UsageService) *EntitlementHandler {
	return &EntitlementHandler{
		log:            log.With("handler", "EntitlementHandler"),
		entitlementSvc: entitlementSvc,
		usageSvc:       usageSvc,
	}
}

// GET /api/entitlement
func (h *EntitlementHandler) GetEntitlement(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing session"))
		return
	}

	ent, err := h.entitlementSvc.Resolve(c.Request.Context(), rd.UserID, rd.PlanKey)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	used, err := h.usageSvc.MonthlyCount(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"entitlement":         ent,
		"checks_used_month":   used,
		"monthly_check_limit": ent.MonthlyCheckLimit,
	})
}
