package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EngineCallLog records every outbound engine call for audit. One row per
// request/response pair, success or not.
type EngineCallLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CheckID   *uuid.UUID     `gorm:"type:uuid;index" json:"check_id,omitempty"`
	CallType  string         `gorm:"column:call_type;not null" json:"call_type"`
	Model     string         `gorm:"column:model" json:"model"`
	Prompt    string         `gorm:"column:prompt" json:"prompt"`
	Response  string         `gorm:"column:response" json:"response"`
	Success   bool           `gorm:"column:success;not null" json:"success"`
	Error     string         `gorm:"column:error" json:"error"`
	Usage     datatypes.JSON `gorm:"type:jsonb;column:usage" json:"usage"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (EngineCallLog) TableName() string {
	return "engine_call_log"
}
