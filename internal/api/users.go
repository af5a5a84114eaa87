package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Persistence access
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// UserUpdateRequest carries the optional profile fields; nil leaves a field untouched
type UserUpdateRequest struct {
	Username        *string `json:"username" binding:"omitempty,min=1,max=50"`  // New username
	Email           *string `json:"email" binding:"omitempty,email,max=100"`    // New email
	DefaultCurrency *string `json:"default_currency" binding:"omitempty,len=3"` // New preferred currency
}

// profileCacheKey builds the cache key for one user's profile
func profileCacheKey(userID uint) string {
	return "user:profile:" + strconv.Itoa(int(userID))
}

// MeHandler returns the authenticated user's profile
func MeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		ctx := context.Background()       // Context for Redis operations
		cacheKey := profileCacheKey(userID) // Cache key for this profile
		var user domain.User
		// Try the cache first
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &user); err == nil && found {
			c.JSON(http.StatusOK, user)
			return
		}
		// Fall back to the database
		fresh, err := repo.GetUser(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, fresh, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, fresh)
	}
}

// UpdateMeHandler applies a partial update to the authenticated user's profile
func UpdateMeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		var req UserUpdateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		// Collect only the provided columns
		updates := map[string]any{}
		if req.Username != nil {
			updates["username"] = *req.Username
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.DefaultCurrency != nil {
			updates["default_currency"] = *req.DefaultCurrency
		}
		user, err := repo.UpdateUser(db, userID, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			// Unique index collisions on username/email land here too
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update user"})
			return
		}
		// Log the profile change
		logrus.WithFields(logrus.Fields{
			"user_id": userID,       // User ID
			"fields":  len(updates), // Number of changed columns
		}).Info("User profile updated")
		// Invalidate the cached profile
		_ = utils.DeleteCache(context.Background(), rdb, profileCacheKey(userID))
		c.JSON(http.StatusOK, user)
	}
}
