package domain

import "github.com/shopspring/decimal"

// Account Model
type Account struct {
	ID             uint            `gorm:"primaryKey" json:"id"`                                 // Primary key
	UserID         uint            `gorm:"not null;index" json:"user_id"`                        // Foreign key to owning User
	Name           string          `gorm:"size:100;not null" json:"name"`                        // Account display name
	Type           string          `gorm:"size:20;not null" json:"type"`                         // Account type: debit_card, credit_card, cash, ...
	InitialBalance decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"initial_balance"`   // Opening balance
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`               // Active flag
	User           User            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Owning user
}
