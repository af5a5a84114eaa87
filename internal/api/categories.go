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

// CategoryCreateRequest carries the fields needed to create a category
type CategoryCreateRequest struct {
	Name             string `json:"name" binding:"required,max=50"`                 // Category name
	Type             string `json:"type" binding:"required,oneof=income expense"`   // income or expense
	ParentCategoryID *uint  `json:"parent_category_id"`                             // Optional parent category
	IconName         string `json:"icon_name" binding:"omitempty,max=50"`           // Optional icon identifier
}

// CategoryUpdateRequest carries the optional category fields; nil leaves a field untouched
type CategoryUpdateRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=50"`          // New name
	Type             *string `json:"type" binding:"omitempty,oneof=income expense"`  // New type
	ParentCategoryID *uint   `json:"parent_category_id"`                             // New parent category
	IconName         *string `json:"icon_name" binding:"omitempty,max=50"`           // New icon identifier
}

// categoryCacheKey builds the cache key for one user's default category page
func categoryCacheKey(userID uint) string {
	return "categories:user:" + strconv.Itoa(int(userID))
}

// ListCategoriesHandler returns the caller's categories plus the system defaults
func ListCategoriesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		skip, limit := pagination(c) // Read skip/limit query params
		ctx := context.Background()  // Context for Redis operations
		// Only the default page is cached; other pages always hit the DB
		useCache := skip == 0 && limit == 100
		if useCache {
			var cached []domain.Category
			if found, err := utils.GetCache(ctx, rdb, categoryCacheKey(userID), &cached); err == nil && found {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		categories, err := repo.ListCategories(db, userID, skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		if useCache {
			_ = utils.SetCache(ctx, rdb, categoryCacheKey(userID), categories, 60*time.Second) // Cache for 60 seconds
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CreateCategoryHandler creates a new user-owned category
func CreateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		var req CategoryCreateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		category := domain.Category{
			UserID:           &userID,              // Owner scope; system rows keep NULL here
			ParentCategoryID: req.ParentCategoryID, // Optional parent
			Name:             req.Name,             // Category name
			Type:             req.Type,             // income or expense
			IconName:         req.IconName,         // Icon identifier
		}
		if err := repo.CreateCategory(db, &category); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Owner
				"error":   err.Error(), // Error message
			}).Error("Failed to create category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		// Invalidate the cached category list
		_ = utils.DeleteCache(context.Background(), rdb, categoryCacheKey(userID))
		c.JSON(http.StatusCreated, category)
	}
}

// GetCategoryHandler returns one category visible to the caller
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		category, err := repo.GetCategory(db, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// UpdateCategoryHandler applies a partial update to one of the caller's categories
func UpdateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		var req CategoryUpdateRequest // Bind JSON request to struct
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
		if req.ParentCategoryID != nil {
			updates["parent_category_id"] = *req.ParentCategoryID
		}
		if req.IconName != nil {
			updates["icon_name"] = *req.IconName
		}
		category, err := repo.UpdateCategory(db, id, userID, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Covers missing rows and read-only system categories alike
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		// Invalidate the cached category list
		_ = utils.DeleteCache(context.Background(), rdb, categoryCacheKey(userID))
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler removes one of the caller's categories
func DeleteCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		if err := repo.DeleteCategory(db, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		// Invalidate the cached category list
		_ = utils.DeleteCache(context.Background(), rdb, categoryCacheKey(userID))
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
