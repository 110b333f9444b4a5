package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("AUTH_HANDLE_DOMAIN", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, defaultHandleDomain, cfg.AuthHandleDomain)
	assert.Contains(t, cfg.CORSOrigins, "http://localhost:3000")
}

func TestLoadExtendsCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.example.com ,, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.CORSOrigins, "https://app.example.com")
	assert.Contains(t, cfg.CORSOrigins, "https://admin.example.com")
	assert.Contains(t, cfg.CORSOrigins, "http://localhost:5173", "env origins extend the defaults")
}

func TestLoadRequiresServiceKeyWithAuthURL(t *testing.T) {
	t.Setenv("AUTH_API_URL", "https://project.supabase.co")
	t.Setenv("AUTH_SERVICE_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
