package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget Model
type Budget struct {
	ID         uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID     uint            `gorm:"not null;index" json:"user_id"`             // Foreign key to owning User
	CategoryID *uint           `gorm:"index" json:"category_id"`                  // Budgeted category; NULL marks the overall budget
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"` // Budget ceiling
	Period     string          `gorm:"size:20;not null" json:"period"`            // Budget period: monthly, yearly, ...
	StartDate  time.Time       `gorm:"type:date;not null" json:"start_date"`      // First day the budget applies
	Category   *Category       `gorm:"constraint:OnDelete:SET NULL" json:"-"`     // Budgeted category row
}
