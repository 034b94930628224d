package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("AUTH_BASE_URL", "http://localhost:3000")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://todo.example.com, http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "secret", cfg.AuthSecret)
	assert.Equal(t, "secret", cfg.AuthMode)
	assert.Equal(t, []string{"https://todo.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("AUTH_BASE_URL", "http://localhost:3000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_SECRET")
}

func TestLoad_MissingBaseURL(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("AUTH_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_BASE_URL")
}

// Режим верификации выбирается один раз при старте, реализован только
// secret - все остальное должно падать сразу, не на первом запросе.
func TestLoad_UnknownAuthMode(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_MODE", "jwks")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_MODE")
}
