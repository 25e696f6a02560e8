package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(500);not null"`
	Date        time.Time `gorm:"not null;index"`
	Location    string    `gorm:"type:varchar(200);not null"`

	Client      string `gorm:"not null"`
	ClientEmail string `gorm:"not null"`

	UsherCount int         `gorm:"default:1"`
	Status     EventStatus `gorm:"type:varchar(16);default:'pending';index"`

	Ushers []User `gorm:"many2many:event_ushers"`
	Images datatypes.JSONSlice[string]

	CreatedBy uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
