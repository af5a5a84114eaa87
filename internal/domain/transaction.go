package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction Model
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID          uint            `gorm:"not null;index" json:"user_id"`              // Foreign key to owning User
	AccountID       uint            `gorm:"not null;index" json:"account_id"`           // Foreign key to Account
	ProjectID       *uint           `gorm:"index" json:"project_id"`                    // Optional foreign key to Project
	CategoryID      *uint           `gorm:"index" json:"category_id"`                   // Optional foreign key to Category
	Type            string          `gorm:"size:10;not null" json:"type"`               // income or expense
	Title           string          `gorm:"size:255" json:"title"`                      // Short title
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`  // Transaction amount
	Currency        string          `gorm:"size:3;not null" json:"currency"`            // Currency code
	TransactionDate time.Time       `gorm:"not null" json:"transaction_date"`           // When the transaction happened
	Notes           string          `gorm:"type:text" json:"notes"`                     // Free-form notes
	CreatedAt       time.Time       `json:"created_at"`                                 // Timestamp of creation
	Account         Account         `gorm:"constraint:OnDelete:CASCADE" json:"-"`       // Owning account
	Project         *Project        `gorm:"constraint:OnDelete:SET NULL" json:"-"`      // Grouping project
	Category        *Category       `gorm:"constraint:OnDelete:SET NULL" json:"-"`      // Assigned category
	Tags            []Tag           `gorm:"many2many:transaction_tags" json:"tags"`     // Attached tags via join table
}
