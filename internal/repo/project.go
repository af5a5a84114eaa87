package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Fixed-point amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// ProjectStats aggregates the transactions grouped under one project
type ProjectStats struct {
	TotalIncome      decimal.Decimal `json:"total_income"`      // Sum of income amounts
	TotalExpense     decimal.Decimal `json:"total_expense"`     // Sum of expense amounts
	NetAmount        decimal.Decimal `json:"net_amount"`        // Income minus expense
	TransactionCount int64           `json:"transaction_count"` // Number of transactions
}

// ListProjects returns a page of the user's projects
func ListProjects(db *gorm.DB, userID uint, skip, limit int) ([]domain.Project, error) {
	projects := []domain.Project{} // Result slice, empty rather than nil for JSON
	err := db.Where("user_id = ?", userID).Offset(skip).Limit(limit).Find(&projects).Error
	return projects, err
}

// GetProject fetches one project scoped to its owner
func GetProject(db *gorm.DB, projectID, userID uint) (*domain.Project, error) {
	var project domain.Project // Row holder
	if err := db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &project, nil
}

// CreateProject inserts a new project for the user
func CreateProject(db *gorm.DB, project *domain.Project) error {
	return db.Create(project).Error // Insert and backfill the ID
}

// UpdateProject applies a partial update to an owned project
func UpdateProject(db *gorm.DB, projectID, userID uint, updates map[string]any) (*domain.Project, error) {
	project, err := GetProject(db, projectID, userID) // Ownership check doubles as the load
	if err != nil {
		return nil, err // Not found or storage error
	}
	// Apply only the provided columns
	if len(updates) > 0 {
		if err := db.Model(project).Updates(updates).Error; err != nil {
			return nil, err // Storage error
		}
	}
	return project, nil
}

// DeleteProject removes an owned project; missing rows report not found
func DeleteProject(db *gorm.DB, projectID, userID uint) error {
	res := db.Where("id = ? AND user_id = ?", projectID, userID).Delete(&domain.Project{})
	if res.Error != nil {
		return res.Error // Storage error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Nothing matched owner+id
	}
	return nil
}

// ListProjectTransactions returns the transactions grouped under an owned project
func ListProjectTransactions(db *gorm.DB, projectID, userID uint, skip, limit int) ([]domain.Transaction, error) {
	// Resolve the project first so a foreign project reads as not found
	if _, err := GetProject(db, projectID, userID); err != nil {
		return nil, err
	}
	transactions := []domain.Transaction{} // Result slice
	err := db.Preload("Tags").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Offset(skip).Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// GetProjectStats computes fresh income/expense aggregates for an owned project
func GetProjectStats(db *gorm.DB, projectID, userID uint) (*ProjectStats, error) {
	// Resolve the project first so a foreign project reads as not found
	if _, err := GetProject(db, projectID, userID); err != nil {
		return nil, err
	}
	stats := &ProjectStats{} // Aggregate holder
	// Income total
	if err := db.Model(&domain.Transaction{}).
		Where("project_id = ? AND user_id = ? AND type = ?", projectID, userID, "income").
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalIncome).Error; err != nil {
		return nil, err
	}
	// Expense total
	if err := db.Model(&domain.Transaction{}).
		Where("project_id = ? AND user_id = ? AND type = ?", projectID, userID, "expense").
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalExpense).Error; err != nil {
		return nil, err
	}
	// Transaction count
	if err := db.Model(&domain.Transaction{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&stats.TransactionCount).Error; err != nil {
		return nil, err
	}
	stats.NetAmount = stats.TotalIncome.Sub(stats.TotalExpense) // Net result
	return stats, nil
}
