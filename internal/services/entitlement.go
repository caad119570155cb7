package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adcomply/adcomply-backend/internal/platform/logger"
	"github.com/adcomply/adcomply-backend/internal/repos"
)

// Plan tier keys, lowest to highest. The ordering is fixed and capability
// flags are monotonic in it: a higher tier never loses a flag a lower tier has.
const (
	PlanFree         = "free"
	PlanProfessional = "professional"
	PlanProPlus      = "proplus"
	PlanUltra        = "ultra"
)

// Entitlement is derived from the plan key on every access and never stored,
// so a plan change is visible immediately.
type Entitlement struct {
	PlanKey string `json:"plan_key"`
	// MonthlyCheckLimit of 0 means unlimited.
	MonthlyCheckLimit int  `json:"monthly_check_limit"`
	ImageAttachment   bool `json:"image_attachment"`
	PDFExport         bool `json:"pdf_export"`
	MultiUser         bool `json:"multi_user"`
	BulkReview        bool `json:"bulk_review"`
}

// ResolveEntitlement maps a plan key to its capabilities. An unknown or empty
// key resolves to the lowest tier: an unrecognized plan must never grant
// elevated capability.
func ResolveEntitlement(planKey string) Entitlement {
	switch strings.ToLower(strings.TrimSpace(planKey)) {
	case PlanProfessional:
		return Entitlement{
			PlanKey:           PlanProfessional,
			MonthlyCheckLimit: 100,
			ImageAttachment:   true,
		}
	case PlanProPlus:
		return Entitlement{
			PlanKey:           PlanProPlus,
			MonthlyCheckLimit: 500,
			ImageAttachment:   true,
			MultiUser:         true,
			BulkReview:        true,
		}
	case PlanUltra:
		return Entitlement{
			PlanKey:           PlanUltra,
			MonthlyCheckLimit: 0,
			ImageAttachment:   true,
			PDFExport:         true,
			MultiUser:         true,
			BulkReview:        true,
		}
	default:
		return Entitlement{
			PlanKey:           PlanFree,
			MonthlyCheckLimit: 5,
		}
	}
}

// TierRank gives the fixed monotonic ordering of plan tiers.
func TierRank(planKey string) int {
	switch strings.ToLower(strings.TrimSpace(planKey)) {
	case PlanProfessional:
		return 1
	case PlanProPlus:
		return 2
	case PlanUltra:
		return 3
	default:
		return 0
	}
}

// EntitlementService resolves the caller's entitlement. The session claim is
// the primary plan source; when the claim carries no plan the user row is
// read directly, so the result is never stale across a plan change.
type EntitlementService interface {
	Resolve(ctx context.Context, userID uuid.UUID, sessionPlanKey string) (Entitlement, error)
}

type entitlementService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewEntitlementService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) EntitlementService {
	return &entitlementService{
		db:       db,
		log:      baseLog.With("service", "EntitlementService"),
		userRepo: userRepo,
	}
}

func (s *entitlementService) Resolve(ctx context.Context, userID uuid.UUID, sessionPlanKey string) (Entitlement, error) {
	planKey := strings.TrimSpace(sessionPlanKey)
	if planKey == "" && s.userRepo != nil && userID != uuid.Nil {
		fromRow, err := s.userRepo.GetPlanKey(ctx, nil, userID)
		if err != nil {
			// Resolution is fail-safe: on a read error the caller gets the
			// lowest tier, never elevated capability and never a hard error.
			s.log.Warn("plan key lookup failed, resolving lowest tier", "user_id", userID.String(), "error", err)
			return ResolveEntitlement(""), nil
		}
		planKey = fromRow
	}
	return ResolveEntitlement(planKey), nil
}
