package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := &Config{
		App:       AppConfig{Environment: "development", DataPath: "/tmp/bookhaven"},
		Logger:    LoggerConfig{Level: "info"},
		RateLimit: RateLimitConfig{RequestsPerMinute: 50, Burst: 10},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty environment", func(c *Config) { c.App.Environment = "" }},
		{"unknown environment", func(c *Config) { c.App.Environment = "qa" }},
		{"unknown log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty data path", func(c *Config) { c.App.DataPath = "" }},
		{"non-positive rate limit", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("BOOKHAVEN_TEST_VALUE", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "BOOKHAVEN_TEST_VALUE", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "BOOKHAVEN_TEST_VALUE", "default"))
	assert.Equal(t, "default", getConfigValue("", "BOOKHAVEN_TEST_UNSET", "default"))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("BOOKHAVEN_TEST_INT", "42")
	assert.Equal(t, 42, getIntConfigValue("", "BOOKHAVEN_TEST_INT", 7))

	t.Setenv("BOOKHAVEN_TEST_INT", "not-a-number")
	assert.Equal(t, 7, getIntConfigValue("", "BOOKHAVEN_TEST_INT", 7))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nBOOKHAVEN_ENV_FILE_KEY=hello\nQUOTED_KEY=\"quoted value\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("BOOKHAVEN_ENV_FILE_KEY", "")
	os.Unsetenv("BOOKHAVEN_ENV_FILE_KEY")
	t.Setenv("QUOTED_KEY", "")
	os.Unsetenv("QUOTED_KEY")

	require.NoError(t, loadEnvFile(envPath))

	assert.Equal(t, "hello", os.Getenv("BOOKHAVEN_ENV_FILE_KEY"))
	assert.Equal(t, "quoted value", os.Getenv("QUOTED_KEY"))
}

func TestLoadEnvFile_EnvVarsTakePrecedence(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("BOOKHAVEN_PRESET=from-file\n"), 0o600))

	t.Setenv("BOOKHAVEN_PRESET", "from-env")
	require.NoError(t, loadEnvFile(envPath))

	assert.Equal(t, "from-env", os.Getenv("BOOKHAVEN_PRESET"))
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", got)

	got, err = expandPath("/absolute/path", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = expandPath("~/data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), got)
}
