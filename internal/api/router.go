package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"finance_tracker/internal/config"     // Application configuration
	"finance_tracker/internal/middleware" // JWT middleware

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route group onto a gin engine
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance

	// CORS for the browser frontend
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,                                     // Allowed origins
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, // Allowed verbs
		AllowHeaders:     []string{"Authorization", "Content-Type"},           // Allowed headers
		AllowCredentials: true,                                                // Allow cookies/credentials
	}))

	ttl := time.Duration(cfg.TokenTTLMin) * time.Minute // Access token lifetime
	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret) // Bearer token guard

	// Liveness endpoints
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the personal finance tracker"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", RegisterHandler(db))               // Registration endpoint
	authGroup.POST("/token", TokenHandler(db, cfg.JWTSecret, ttl)) // OAuth2-style token endpoint
	authGroup.POST("/login", LoginHandler(db, cfg.JWTSecret, ttl)) // Login endpoint returning token + user
	authGroup.GET("/verify", auth, VerifyHandler(db))              // Token verification endpoint

	// Current user routes
	usersGroup := r.Group("/users", auth)
	usersGroup.GET("/me", MeHandler(db, rdb))       // Profile endpoint
	usersGroup.PUT("/me", UpdateMeHandler(db, rdb)) // Profile update endpoint

	// Account routes
	accountsGroup := r.Group("/accounts", auth)
	accountsGroup.GET("", ListAccountsHandler(db))          // List accounts
	accountsGroup.POST("", CreateAccountHandler(db))        // Create account
	accountsGroup.GET("/:id", GetAccountHandler(db))        // Get account
	accountsGroup.PUT("/:id", UpdateAccountHandler(db))     // Update account
	accountsGroup.DELETE("/:id", DeleteAccountHandler(db))  // Delete account

	// Project routes, including per-project transactions and stats
	projectsGroup := r.Group("/projects", auth)
	projectsGroup.GET("", ListProjectsHandler(db))                              // List projects
	projectsGroup.POST("", CreateProjectHandler(db))                            // Create project
	projectsGroup.GET("/:id", GetProjectHandler(db))                            // Get project
	projectsGroup.PUT("/:id", UpdateProjectHandler(db))                         // Update project
	projectsGroup.DELETE("/:id", DeleteProjectHandler(db))                      // Delete project
	projectsGroup.GET("/:id/transactions", ListProjectTransactionsHandler(db))  // Project transactions
	projectsGroup.GET("/:id/stats", ProjectStatsHandler(db))                    // Project statistics

	// Category routes; list is cached
	categoriesGroup := r.Group("/categories", auth)
	categoriesGroup.GET("", ListCategoriesHandler(db, rdb))         // List categories
	categoriesGroup.POST("", CreateCategoryHandler(db, rdb))        // Create category
	categoriesGroup.GET("/:id", GetCategoryHandler(db))             // Get category
	categoriesGroup.PUT("/:id", UpdateCategoryHandler(db, rdb))     // Update category
	categoriesGroup.DELETE("/:id", DeleteCategoryHandler(db, rdb))  // Delete category

	// Transaction routes
	transactionsGroup := r.Group("/transactions", auth)
	transactionsGroup.GET("", ListTransactionsHandler(db))          // List transactions
	transactionsGroup.POST("", CreateTransactionHandler(db))        // Create transaction
	transactionsGroup.GET("/:id", GetTransactionHandler(db))        // Get transaction
	transactionsGroup.PUT("/:id", UpdateTransactionHandler(db))     // Update transaction
	transactionsGroup.DELETE("/:id", DeleteTransactionHandler(db))  // Delete transaction

	// Tag routes
	tagsGroup := r.Group("/tags", auth)
	tagsGroup.GET("", ListTagsHandler(db))          // List tags
	tagsGroup.POST("", CreateTagHandler(db))        // Create tag
	tagsGroup.GET("/:id", GetTagHandler(db))        // Get tag
	tagsGroup.PUT("/:id", UpdateTagHandler(db))     // Update tag
	tagsGroup.DELETE("/:id", DeleteTagHandler(db))  // Delete tag

	// Budget routes
	budgetsGroup := r.Group("/budgets", auth)
	budgetsGroup.GET("", ListBudgetsHandler(db))          // List budgets
	budgetsGroup.POST("", CreateBudgetHandler(db))        // Create budget
	budgetsGroup.GET("/:id", GetBudgetHandler(db))        // Get budget
	budgetsGroup.PUT("/:id", UpdateBudgetHandler(db))     // Update budget
	budgetsGroup.DELETE("/:id", DeleteBudgetHandler(db))  // Delete budget

	return r
}
