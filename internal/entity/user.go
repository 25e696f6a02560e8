package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleUsher UserRole = "usher"
	UserRoleAdmin UserRole = "admin"
)

// Profile carries the public-facing usher details. Stored embedded so a user
// row is always complete; Skills is a JSON column.
type Profile struct {
	Bio          string                      `gorm:"type:varchar(500);default:''" json:"bio"`
	Experience   string                      `gorm:"default:''" json:"experience"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Availability bool                        `gorm:"default:true" json:"availability"`

	ProfileImage                string `gorm:"default:''" json:"profileImage"`
	ProfileImageRejected        bool   `gorm:"default:false" json:"profileImageRejected"`
	ProfileImageRejectionReason string `gorm:"default:''" json:"profileImageRejectionReason"`

	Phone    string `gorm:"default:''" json:"phone"`
	Location string `gorm:"default:''" json:"location"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(50);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         UserRole  `gorm:"type:varchar(16);default:'usher';not null;index"`

	IsActive           bool `gorm:"default:true"`
	IsVisibleOnWebsite bool `gorm:"default:true;index"`

	LastLoginAt *time.Time

	// Set when the account was created through the signup-code gate.
	SignupCodeID *uuid.UUID `gorm:"type:uuid"`

	Profile Profile `gorm:"embedded;embeddedPrefix:profile_"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
