package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor represents a clinic doctor profile. A doctor may optionally be
// linked to a User account (role=doctor) for self-service profile updates.
type Doctor struct {
	ID             int             `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName      string          `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string          `gorm:"type:varchar(100);not null" json:"last_name"`
	Specialization string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string          `gorm:"type:text" json:"biography,omitempty"`
	PriceModifier  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:1.00" json:"price_modifier"`
	UserID         *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AvatarPath     string          `gorm:"type:varchar(255)" json:"avatar_path,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// FullName returns the doctor's display name.
func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// IsLinkedTo reports whether the doctor profile belongs to the given user account.
func (d *Doctor) IsLinkedTo(userID uuid.UUID) bool {
	return d.UserID != nil && *d.UserID == userID
}
