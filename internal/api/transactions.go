package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"time"     // Transaction dates

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Persistence access

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point amounts
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// TransactionCreateRequest carries the fields needed to record a transaction
type TransactionCreateRequest struct {
	AccountID       uint            `json:"account_id" binding:"required"`                // Target account
	ProjectID       *uint           `json:"project_id"`                                   // Optional project grouping
	CategoryID      *uint           `json:"category_id"`                                  // Optional category
	Type            string          `json:"type" binding:"required,oneof=income expense"` // income or expense
	Title           string          `json:"title" binding:"omitempty,max=255"`            // Short title
	// Pointer so a missing amount fails required; validator ignores the tag on a bare struct type
	Amount          *decimal.Decimal `json:"amount" binding:"required"`                   // Transaction amount
	Currency        string          `json:"currency" binding:"required,len=3"`            // Currency code
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`          // When it happened
	Notes           string          `json:"notes"`                                        // Free-form notes
	TagIDs          []uint          `json:"tag_ids"`                                      // Tags to attach
}

// TransactionUpdateRequest carries the optional fields; nil leaves a field untouched.
// A present tag_ids replaces the tag set, even when empty.
type TransactionUpdateRequest struct {
	AccountID       *uint            `json:"account_id"`                                    // New account
	ProjectID       *uint            `json:"project_id"`                                    // New project
	CategoryID      *uint            `json:"category_id"`                                   // New category
	Type            *string          `json:"type" binding:"omitempty,oneof=income expense"` // New type
	Title           *string          `json:"title" binding:"omitempty,max=255"`             // New title
	Amount          *decimal.Decimal `json:"amount"`                                        // New amount
	Currency        *string          `json:"currency" binding:"omitempty,len=3"`            // New currency code
	TransactionDate *time.Time       `json:"transaction_date"`                              // New date
	Notes           *string          `json:"notes"`                                         // New notes
	TagIDs          *[]uint          `json:"tag_ids"`                                       // Replacement tag set
}

// ListTransactionsHandler returns the caller's transactions
func ListTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		skip, limit := pagination(c) // Read skip/limit query params
		transactions, err := repo.ListTransactions(db, userID, skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

// CreateTransactionHandler records a new transaction for the caller
func CreateTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		var req TransactionCreateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		transaction := domain.Transaction{
			UserID:          userID,              // Owner scope
			AccountID:       req.AccountID,       // Target account
			ProjectID:       req.ProjectID,       // Project grouping
			CategoryID:      req.CategoryID,      // Category
			Type:            req.Type,            // income or expense
			Title:           req.Title,           // Short title
			Amount:          *req.Amount,         // Amount, presence enforced by binding
			Currency:        req.Currency,        // Currency code
			TransactionDate: req.TransactionDate, // When it happened
			Notes:           req.Notes,           // Notes
		}
		if err := repo.CreateTransaction(db, &transaction, req.TagIDs); err != nil {
			// FK violations on account/project/category surface here
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Owner
				"error":   err.Error(), // Error message
			}).Error("Failed to create transaction")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create transaction"})
			return
		}
		// Log the recorded transaction
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,                    // Owner
			"transaction_id": transaction.ID,            // New row ID
			"type":           transaction.Type,          // income or expense
			"amount":         transaction.Amount.String(), // Amount
		}).Info("Transaction recorded")
		c.JSON(http.StatusCreated, transaction)
	}
}

// GetTransactionHandler returns one of the caller's transactions
func GetTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		transaction, err := repo.GetTransaction(db, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

// UpdateTransactionHandler applies a partial update to one of the caller's transactions
func UpdateTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		var req TransactionUpdateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		// Collect only the provided columns
		updates := map[string]any{}
		if req.AccountID != nil {
			updates["account_id"] = *req.AccountID
		}
		if req.ProjectID != nil {
			updates["project_id"] = *req.ProjectID
		}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.Type != nil {
			updates["type"] = *req.Type
		}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Amount != nil {
			updates["amount"] = *req.Amount
		}
		if req.Currency != nil {
			updates["currency"] = *req.Currency
		}
		if req.TransactionDate != nil {
			updates["transaction_date"] = *req.TransactionDate
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		transaction, err := repo.UpdateTransaction(db, id, userID, updates, req.TagIDs)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

// DeleteTransactionHandler removes one of the caller's transactions
func DeleteTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		if err := repo.DeleteTransaction(db, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
	}
}
