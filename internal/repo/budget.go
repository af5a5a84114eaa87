package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListBudgets returns a page of the user's budgets
func ListBudgets(db *gorm.DB, userID uint, skip, limit int) ([]domain.Budget, error) {
	budgets := []domain.Budget{} // Result slice, empty rather than nil for JSON
	err := db.Where("user_id = ?", userID).Offset(skip).Limit(limit).Find(&budgets).Error
	return budgets, err
}

// GetBudget fetches one budget scoped to its owner
func GetBudget(db *gorm.DB, budgetID, userID uint) (*domain.Budget, error) {
	var budget domain.Budget // Row holder
	if err := db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &budget, nil
}

// CreateBudget inserts a new budget for the user
func CreateBudget(db *gorm.DB, budget *domain.Budget) error {
	return db.Create(budget).Error // Insert and backfill the ID
}

// UpdateBudget applies a partial update to an owned budget
func UpdateBudget(db *gorm.DB, budgetID, userID uint, updates map[string]any) (*domain.Budget, error) {
	budget, err := GetBudget(db, budgetID, userID) // Ownership check doubles as the load
	if err != nil {
		return nil, err // Not found or storage error
	}
	// Apply only the provided columns
	if len(updates) > 0 {
		if err := db.Model(budget).Updates(updates).Error; err != nil {
			return nil, err // Storage error
		}
	}
	return budget, nil
}

// DeleteBudget removes an owned budget; missing rows report not found
func DeleteBudget(db *gorm.DB, budgetID, userID uint) error {
	res := db.Where("id = ? AND user_id = ?", budgetID, userID).Delete(&domain.Budget{})
	if res.Error != nil {
		return res.Error // Storage error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Nothing matched owner+id
	}
	return nil
}
