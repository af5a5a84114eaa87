package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"reflect"  // Struct tag inspection
	"strconv"  // String conversion
	"strings"  // String manipulation

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Access to the binding validator engine
	"github.com/go-playground/validator/v10" // Validation backing gin's binding
)

// Report validation failures under the JSON wire names, not Go field names
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// currentUserID reads the authenticated user's id set by the JWT middleware
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID") // Set by middleware.JWTAuthMiddleware
	if !exists {
		// Should not happen behind the middleware, but fail closed
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return v.(uint), true
}

// pagination reads skip/limit query parameters with the original defaults
func pagination(c *gin.Context) (int, int) {
	skip := 0    // Default offset
	limit := 100 // Default page size
	if s := c.Query("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v // Set skip if valid
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v // Set limit if valid
		}
	}
	return skip, limit
}

// pathID parses the numeric :id path parameter
func pathID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// Non-numeric ids are a request shape problem, not a missing row
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": gin.H{"id": "Must be a positive integer"}})
		return 0, false
	}
	return uint(v), true
}

// bindJSON binds the request body, reporting 422 with per-field detail on failure
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		detail := make(map[string]string, len(verrs)) // Field -> reason
		for _, fe := range verrs {
			// Field() carries the json tag name via the registered tag name func
			detail[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
		return false
	}
	// Malformed JSON or a type mismatch outside validator's reach
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": gin.H{"body": "Malformed request body"}})
	return false
}

// validationMessage maps a validator tag to a human readable reason
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}
