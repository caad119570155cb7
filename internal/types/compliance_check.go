package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ComplianceCheck is one persisted, completed analysis. Immutable after
// creation except for Notes; owned exclusively by UserID.
type ComplianceCheck struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	ContentText     string         `gorm:"not null;column:content_text" json:"content_text"`
	ContentType     string         `gorm:"not null;column:content_type" json:"content_type"`
	Platform        string         `gorm:"column:platform" json:"platform"`
	OverallStatus   string         `gorm:"not null;column:overall_status" json:"overall_status"`
	ComplianceScore int            `gorm:"not null;column:compliance_score" json:"compliance_score"`
	ResultJSON      datatypes.JSON `gorm:"type:jsonb;column:result_json" json:"result_json"`
	Notes           string         `gorm:"column:notes" json:"notes"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ComplianceCheck) TableName() string {
	return "compliance_check"
}
