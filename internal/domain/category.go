package domain

// Category Model
type Category struct {
	ID               uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	UserID           *uint     `gorm:"index" json:"user_id"`                 // Owning user; NULL marks a shared system category
	ParentCategoryID *uint     `json:"parent_category_id"`                   // Optional parent for a category tree
	Name             string    `gorm:"size:50;not null" json:"name"`         // Category name
	Type             string    `gorm:"size:10;not null" json:"type"`         // income or expense
	IconName         string    `gorm:"size:50" json:"icon_name"`             // Icon identifier for the frontend
	ParentCategory   *Category `gorm:"foreignKey:ParentCategoryID" json:"-"` // Parent category row
}
