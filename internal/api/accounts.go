package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Persistence access

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point amounts
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// AccountCreateRequest carries the fields needed to open an account
type AccountCreateRequest struct {
	Name           string          `json:"name" binding:"required,max=100"` // Account display name
	Type           string          `json:"type" binding:"required,max=20"`  // Account type
	InitialBalance decimal.Decimal `json:"initial_balance"`                 // Opening balance, defaults to 0
	IsActive       *bool           `json:"is_active"`                       // Active flag, defaults to true
}

// AccountUpdateRequest carries the optional account fields; nil leaves a field untouched
type AccountUpdateRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=100"` // New name
	Type           *string          `json:"type" binding:"omitempty,min=1,max=20"`  // New type
	InitialBalance *decimal.Decimal `json:"initial_balance"`                        // New opening balance
	IsActive       *bool            `json:"is_active"`                              // New active flag
}

// ListAccountsHandler returns the caller's accounts
func ListAccountsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		skip, limit := pagination(c) // Read skip/limit query params
		accounts, err := repo.ListAccounts(db, userID, skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

// CreateAccountHandler opens a new account for the caller
func CreateAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		var req AccountCreateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		isActive := true // Accounts start active unless asked otherwise
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		account := domain.Account{
			UserID:         userID,             // Owner scope
			Name:           req.Name,           // Display name
			Type:           req.Type,           // Account type
			InitialBalance: req.InitialBalance, // Opening balance
			IsActive:       isActive,           // Active flag
		}
		if err := repo.CreateAccount(db, &account); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Owner
				"error":   err.Error(), // Error message
			}).Error("Failed to create account")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

// GetAccountHandler returns one of the caller's accounts
func GetAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		account, err := repo.GetAccount(db, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch account"})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

// UpdateAccountHandler applies a partial update to one of the caller's accounts
func UpdateAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		var req AccountUpdateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		// Collect only the provided columns
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Type != nil {
			updates["type"] = *req.Type
		}
		if req.InitialBalance != nil {
			updates["initial_balance"] = *req.InitialBalance
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		account, err := repo.UpdateAccount(db, id, userID, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

// DeleteAccountHandler removes one of the caller's accounts
func DeleteAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		if err := repo.DeleteAccount(db, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
