package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := LoadConfig()
	assert.Equal(t, 30, cfg.TokenTTLMin) // Default token lifetime
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "120")
	t.Setenv("CORS_ORIGINS", "https://app.example.com,https://staging.example.com")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, 120, cfg.TokenTTLMin)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProd)
}
