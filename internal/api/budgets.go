package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"time"     // Budget start dates

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Persistence access

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// BudgetCreateRequest carries the fields needed to create a budget
type BudgetCreateRequest struct {
	CategoryID *uint `json:"category_id"` // Budgeted category; absent means overall
	// Pointer so a missing amount fails required; validator ignores the tag on a bare struct type
	Amount    *decimal.Decimal `json:"amount" binding:"required"`        // Budget ceiling
	Period    string           `json:"period" binding:"required,max=20"` // monthly, yearly, ...
	StartDate time.Time        `json:"start_date" binding:"required"`    // First day the budget applies
}

// BudgetUpdateRequest carries the optional budget fields; nil leaves a field untouched
type BudgetUpdateRequest struct {
	CategoryID *uint            `json:"category_id"`                            // New category
	Amount     *decimal.Decimal `json:"amount"`                                 // New ceiling
	Period     *string          `json:"period" binding:"omitempty,min=1,max=20"` // New period
	StartDate  *time.Time       `json:"start_date"`                             // New start date
}

// ListBudgetsHandler returns the caller's budgets
func ListBudgetsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		skip, limit := pagination(c) // Read skip/limit query params
		budgets, err := repo.ListBudgets(db, userID, skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budgets"})
			return
		}
		c.JSON(http.StatusOK, budgets)
	}
}

// CreateBudgetHandler creates a new budget for the caller
func CreateBudgetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		var req BudgetCreateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		budget := domain.Budget{
			UserID:     userID,         // Owner scope
			CategoryID: req.CategoryID, // Budgeted category
			Amount:     *req.Amount,    // Ceiling, presence enforced by binding
			Period:     req.Period,     // Budget period
			StartDate:  req.StartDate,  // First day
		}
		if err := repo.CreateBudget(db, &budget); err != nil {
			// FK violations on category surface here
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create budget"})
			return
		}
		c.JSON(http.StatusCreated, budget)
	}
}

// GetBudgetHandler returns one of the caller's budgets
func GetBudgetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		budget, err := repo.GetBudget(db, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budget"})
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

// UpdateBudgetHandler applies a partial update to one of the caller's budgets
func UpdateBudgetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		var req BudgetUpdateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		// Collect only the provided columns
		updates := map[string]any{}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.Amount != nil {
			updates["amount"] = *req.Amount
		}
		if req.Period != nil {
			updates["period"] = *req.Period
		}
		if req.StartDate != nil {
			updates["start_date"] = *req.StartDate
		}
		budget, err := repo.UpdateBudget(db, id, userID, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

// DeleteBudgetHandler removes one of the caller's budgets
func DeleteBudgetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		if err := repo.DeleteBudget(db, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
	}
}
