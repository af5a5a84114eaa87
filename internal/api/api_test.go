package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"finance_tracker/internal/config"
	dbpkg "finance_tracker/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter builds a router over an in-memory database without Redis
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, dbpkg.AutoMigrate(gdb))
	require.NoError(t, dbpkg.SeedDefaultCategories(gdb))
	cfg := &config.Config{
		JWTSecret:   "test-secret",
		TokenTTLMin: 30,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	return NewRouter(gdb, nil, cfg)
}

// doJSON performs a request with an optional bearer token and JSON body
func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user and returns a bearer token for it
func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/auth/token", "", gin.H{
		"username": username,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same username, different email
	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice", "email": "other@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already registered")

	// Same email, different username
	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice2", "email": "alice@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t)

	// Missing email and short password
	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice", "password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Detail map[string]string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "email")
	assert.Contains(t, resp.Detail, "password")
}

func TestTokenRejectsBadCredentials(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/auth/token", "", gin.H{
		"username": "alice", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestVerifyResolvesTokenOwner(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := registerAndLogin(t, r, "alice")
	bobToken := registerAndLogin(t, r, "bob")

	w := doJSON(r, http.MethodGet, "/auth/verify", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alice struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alice))
	assert.Equal(t, "alice", alice.Username)

	w = doJSON(r, http.MethodGet, "/auth/verify", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bob struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bob))
	assert.Equal(t, "bob", bob.Username)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = doJSON(r, http.MethodGet, "/accounts", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccountLifecycle(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := registerAndLogin(t, r, "alice")
	bobToken := registerAndLogin(t, r, "bob")

	// Create
	w := doJSON(r, http.MethodPost, "/accounts", aliceToken, gin.H{
		"name": "Wallet", "type": "cash", "initial_balance": "250.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var account struct {
		ID       uint `json:"id"`
		IsActive bool `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.True(t, account.IsActive) // Defaults to active

	// The owner lists it
	w = doJSON(r, http.MethodGet, "/accounts", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Another user cannot see or touch it
	w = doJSON(r, http.MethodGet, "/accounts/1", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(r, http.MethodPut, "/accounts/1", bobToken, gin.H{"name": "Stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(r, http.MethodDelete, "/accounts/1", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Partial update keeps the untouched fields
	w = doJSON(r, http.MethodPut, "/accounts/1", aliceToken, gin.H{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Name           string          `json:"name"`
		InitialBalance decimal.Decimal `json:"initial_balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.InitialBalance.Equal(decimal.RequireFromString("250.00")))

	// Delete, then deleting again reports not found
	w = doJSON(r, http.MethodDelete, "/accounts/1", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodDelete, "/accounts/1", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectStatsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := registerAndLogin(t, r, "alice")
	bobToken := registerAndLogin(t, r, "bob")

	// Supporting rows
	w := doJSON(r, http.MethodPost, "/accounts", aliceToken, gin.H{"name": "Cash", "type": "cash"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/projects", aliceToken, gin.H{"name": "Trip"})
	require.Equal(t, http.StatusCreated, w.Code)

	date := time.Now().UTC().Format(time.RFC3339)
	for _, row := range []gin.H{
		{"account_id": 1, "project_id": 1, "type": "income", "amount": "100", "currency": "CNY", "transaction_date": date},
		{"account_id": 1, "project_id": 1, "type": "expense", "amount": "40", "currency": "CNY", "transaction_date": date},
	} {
		w = doJSON(r, http.MethodPost, "/transactions", aliceToken, row)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/projects/1/stats", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats struct {
		TotalIncome      decimal.Decimal `json:"total_income"`
		TotalExpense     decimal.Decimal `json:"total_expense"`
		NetAmount        decimal.Decimal `json:"net_amount"`
		TransactionCount int64           `json:"transaction_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.True(t, stats.TotalIncome.Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.TotalExpense.Equal(decimal.NewFromInt(40)))
	assert.True(t, stats.NetAmount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, int64(2), stats.TransactionCount)

	// A foreign caller gets 404, not someone else's numbers
	w = doJSON(r, http.MethodGet, "/projects/1/stats", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Project transactions listing is scoped the same way
	w = doJSON(r, http.MethodGet, "/projects/1/transactions", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/projects/1/transactions", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionValidation(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	// Bad type and missing required fields
	w := doJSON(r, http.MethodPost, "/transactions", token, gin.H{
		"account_id": 1, "type": "weird", "currency": "CNYY",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Detail map[string]string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "type")
	assert.Contains(t, resp.Detail, "currency")
	assert.Contains(t, resp.Detail, "amount")
	// Errors use the JSON wire names, not Go field names
	assert.Contains(t, resp.Detail, "transaction_date")
	assert.NotContains(t, resp.Detail, "transactiondate")
}

func TestTransactionRequiresAmount(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/accounts", token, gin.H{"name": "Cash", "type": "cash"})
	require.Equal(t, http.StatusCreated, w.Code)

	// A transaction valid in every way except the missing amount must not be stored as 0
	w = doJSON(r, http.MethodPost, "/transactions", token, gin.H{
		"account_id":       1,
		"type":             "expense",
		"currency":         "CNY",
		"transaction_date": time.Now().UTC().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	var resp struct {
		Detail map[string]string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "amount")

	// Nothing was written
	w = doJSON(r, http.MethodGet, "/transactions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestBudgetRequiresAmount(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/budgets", token, gin.H{
		"period":     "monthly",
		"start_date": time.Now().UTC().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	var resp struct {
		Detail map[string]string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "amount")
}

func TestProfileUpdateIsPartial(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	w := doJSON(r, http.MethodPut, "/users/me", token, gin.H{"default_currency": "USD"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		DefaultCurrency string `json:"default_currency"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "USD", user.DefaultCurrency)
	assert.Equal(t, "alice", user.Username)              // Untouched
	assert.Equal(t, "alice@example.com", user.Email)     // Untouched
}

func TestCategoriesIncludeSystemDefaults(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "alice")

	w := doJSON(r, http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []struct {
		UserID *uint  `json:"user_id"`
		Type   string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 14) // The seeded system set

	// A system category cannot be deleted
	w = doJSON(r, http.MethodDelete, "/categories/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An owned category can
	w = doJSON(r, http.MethodPost, "/categories", token, gin.H{"name": "Pets", "type": "expense"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	w = doJSON(r, http.MethodDelete, "/categories/"+strconv.Itoa(int(created.ID)), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = doJSON(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
