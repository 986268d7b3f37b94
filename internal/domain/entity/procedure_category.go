package entity

import "time"

// ProcedureCategory groups procedures under a unique slug.
type ProcedureCategory struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Procedures []Procedure `gorm:"foreignKey:CategoryID" json:"procedures,omitempty"`
}

func (ProcedureCategory) TableName() string {
	return "procedure_categories"
}
