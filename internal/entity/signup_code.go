package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SignupCode is the single-use, expiring token an admin issues to let a
// prospective usher self-register. A code is consumable iff it is unused and
// unexpired; once consumed it is permanent history and never deleted.
type SignupCode struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"type:varchar(20);uniqueIndex;not null"`

	IsUsed bool       `gorm:"default:false;index"`
	UsedBy *uuid.UUID `gorm:"type:uuid"`
	UsedAt *time.Time

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *SignupCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Consumable reports whether the code can still gate a registration.
func (c *SignupCode) Consumable(now time.Time) bool {
	return !c.IsUsed && now.Before(c.ExpiresAt)
}
