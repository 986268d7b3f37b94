package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. A user holds exactly one role and
// the role determines the capability set.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User represents the centralized account table
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Role       Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	FullName   string    `gorm:"type:varchar(255);not null" json:"full_name"`
	AvatarPath string    `gorm:"type:varchar(255)" json:"avatar_path,omitempty"`
	IsActive   *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DoctorProfiles []Doctor      `gorm:"foreignKey:UserID" json:"doctor_profiles,omitempty"`
	Appointments   []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (User) TableName() string {
	return "users"
}
