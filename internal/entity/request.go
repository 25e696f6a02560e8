package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request is a client's staffing inquiry, routed to admins for approval.
type Request struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientName  string    `gorm:"not null"`
	ClientEmail string    `gorm:"not null"`
	ClientPhone string

	EventDetails string `gorm:"not null"`
	EventType    string `gorm:"default:'General Request'"`

	SelectedUshers []User `gorm:"many2many:request_ushers"`

	Status RequestStatus `gorm:"type:varchar(16);default:'pending';index"`
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
