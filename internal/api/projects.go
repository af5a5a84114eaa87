package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"time"     // Date fields

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Persistence access

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ProjectCreateRequest carries the fields needed to create a project
type ProjectCreateRequest struct {
	Name        string     `json:"name" binding:"required,max=100"` // Project name
	Description string     `json:"description"`                     // Optional description
	StartDate   *time.Time `json:"start_date"`                      // Optional start date
	EndDate     *time.Time `json:"end_date"`                        // Optional end date
}

// ProjectUpdateRequest carries the optional project fields; nil leaves a field untouched
type ProjectUpdateRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"` // New name
	Description *string    `json:"description"`                            // New description
	StartDate   *time.Time `json:"start_date"`                             // New start date
	EndDate     *time.Time `json:"end_date"`                               // New end date
}

// ListProjectsHandler returns the caller's projects
func ListProjectsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		skip, limit := pagination(c) // Read skip/limit query params
		projects, err := repo.ListProjects(db, userID, skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

// CreateProjectHandler creates a new project for the caller
func CreateProjectHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		var req ProjectCreateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		project := domain.Project{
			UserID:      userID,          // Owner scope
			Name:        req.Name,        // Project name
			Description: req.Description, // Description
			StartDate:   req.StartDate,   // Start date
			EndDate:     req.EndDate,     // End date
		}
		if err := repo.CreateProject(db, &project); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Owner
				"error":   err.Error(), // Error message
			}).Error("Failed to create project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
			return
		}
		c.JSON(http.StatusCreated, project)
	}
}

// GetProjectHandler returns one of the caller's projects
func GetProjectHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		project, err := repo.GetProject(db, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// UpdateProjectHandler applies a partial update to one of the caller's projects
func UpdateProjectHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		var req ProjectUpdateRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		// Collect only the provided columns
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.StartDate != nil {
			updates["start_date"] = *req.StartDate
		}
		if req.EndDate != nil {
			updates["end_date"] = *req.EndDate
		}
		project, err := repo.UpdateProject(db, id, userID, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// DeleteProjectHandler removes one of the caller's projects
func DeleteProjectHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		if err := repo.DeleteProject(db, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
	}
}

// ListProjectTransactionsHandler returns the transactions grouped under a project
func ListProjectTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		skip, limit := pagination(c) // Read skip/limit query params
		transactions, err := repo.ListProjectTransactions(db, id, userID, skip, limit)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

// ProjectStatsHandler computes fresh income/expense aggregates for a project
func ProjectStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return // 401 already written
		}
		id, ok := pathID(c)
		if !ok {
			return // 422 already written
		}
		stats, err := repo.GetProjectStats(db, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute project stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
