package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Persistence access
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest carries the fields needed to create an account
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,max=50"`        // Unique username
	Email           string `json:"email" binding:"required,email,max=100"`    // Unique email address
	Password        string `json:"password" binding:"required,min=8,max=72"`  // Plain password, hashed before storage
	DefaultCurrency string `json:"default_currency" binding:"omitempty,len=3"` // Optional preferred currency
}

// CredentialsRequest carries a username/password pair
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// TokenResponse is the OAuth2-style token payload
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed bearer token
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// authenticate verifies a username/password pair against the stored hash
func authenticate(db *gorm.DB, username, password string) (*domain.User, bool) {
	user, err := repo.GetUserByUsername(db, username)
	if err != nil {
		return nil, false // Unknown username
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, false // Wrong password
	}
	return user, true
}

// RegisterHandler creates a new user after rejecting duplicate credentials
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		// Reject a taken username before writing anything
		if _, err := repo.GetUserByUsername(db, req.Username); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
			return
		}
		// Reject a taken email before writing anything
		if _, err := repo.GetUserByEmail(db, req.Email); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Username:        req.Username,         // Unique username
			Email:           req.Email,            // Unique email
			PasswordHash:    string(hash),         // Stored hash
			DefaultCurrency: req.DefaultCurrency,  // May be empty, column default applies
		}
		// Attempt to create the user in the database
		if err := repo.CreateUser(db, &user); err != nil {
			// A concurrent registration can still trip the unique index
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already registered"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		c.JSON(http.StatusCreated, user) // Return the created user shape
	}
}

// TokenHandler authenticates a user and returns a bearer token
func TokenHandler(db *gorm.DB, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		user, ok := authenticate(db, req.Username, req.Password)
		if !ok {
			// Challenge the client on bad credentials
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// LoginHandler authenticates a user and returns both the token and the user
func LoginHandler(db *gorm.DB, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return // 422 already written
		}
		user, ok := authenticate(db, req.Username, req.Password)
		if !ok {
			// Challenge the client on bad credentials
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token alongside the user shape
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,    // Signed bearer token
			"token_type":   "bearer", // Token type
			"user":         user,     // Authenticated user
		})
	}
}

// VerifyHandler resolves the presented bearer token to its user
func VerifyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Set by the JWT middleware
		if !ok {
			return // 401 already written
		}
		user, err := repo.GetUser(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Token outlived its user
				c.Header("WWW-Authenticate", "Bearer")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, user) // Return the resolved user
	}
}
