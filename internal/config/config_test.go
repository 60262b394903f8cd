package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_PORT", "8080")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PASSWORD_MARKER", "@@m@@")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 4, cfg.UsernameMin)
	assert.Equal(t, 12, cfg.UsernameMax)
	assert.Equal(t, 4, cfg.PasswordMin)
	assert.Equal(t, 8, cfg.PasswordMax)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("USERNAME_MAX_LEN", "16")
	t.Setenv("PASSWORD_MAX_LEN", "32")
	t.Setenv("ADMIN_USERNAME", "root")

	cfg := Load()
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 16, cfg.UsernameMax)
	assert.Equal(t, 32, cfg.PasswordMax)
	assert.Equal(t, "root", cfg.AdminUsername)
}

func TestEnvInt_Malformed(t *testing.T) {
	t.Setenv("USERNAME_MIN_LEN", "not-a-number")
	assert.Equal(t, 4, envInt("USERNAME_MIN_LEN", 4))
}
