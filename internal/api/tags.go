package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Persistence access

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// TagCreateRequest carries the fields needed to create a tag
type TagCreateRequest struct {
	Name string `json:"name" binding:"required,max=50"` // Tag name
}

// TagUpdateRequest carries the optional tag fields; nil leaves a field untouched
type TagUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=50"` // New name
}

// ListTagsHandler returns the caller's tags
func ListTagsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		skip, limit := pagination(c) // Read skip/limit query params
		tags, err := repo.ListTags(db, userID, skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}

// CreateTagHandler creates a new tag for the caller
func CreateTagHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		var req TagCreateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		tag := domain.Tag{UserID: userID, Name: req.Name} // Owner-scoped tag
		if err := repo.CreateTag(db, &tag); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
			return
		}
		c.JSON(http.StatusCreated, tag)
	}
}

// GetTagHandler returns one of the caller's tags
func GetTagHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		tag, err := repo.GetTag(db, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tag"})
			return
		}
		c.JSON(http.StatusOK, tag)
	}
}

// UpdateTagHandler applies a partial update to one of the caller's tags
func UpdateTagHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		var req TagUpdateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		// Collect only the provided columns
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		tag, err := repo.UpdateTag(db, id, userID, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
			return
		}
		c.JSON(http.StatusOK, tag)
	}
}

// DeleteTagHandler removes one of the caller's tags
func DeleteTagHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		if err := repo.DeleteTag(db, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
	}
}
