package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Procedure is a bookable clinic service.
type Procedure struct {
	ID           int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	CategoryID   *int            `gorm:"index" json:"category_id,omitempty"`
	RecoveryInfo string          `gorm:"type:text" json:"recovery_info,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Category *ProcedureCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Procedure) TableName() string {
	return "procedures"
}
