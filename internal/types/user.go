package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the account row this service reads. Account management (signup,
// billing, plan assignment) lives in the account service; here the row only
// anchors check ownership and carries the current plan key.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PlanKey   string    `gorm:"column:plan_key" json:"plan_key"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
