package domain

// Tag Model
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`          // Primary key
	UserID uint   `gorm:"not null;index" json:"user_id"` // Foreign key to owning User
	Name   string `gorm:"size:50;not null" json:"name"`  // Tag name
}
