package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "HTTP_PORT", "DB_TYPE", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"SSL_MODE", "SQLITE_PATH", "JWT_SECRET", "JWT_ACCESS_DURATION", "ADMIN_PASSWORD_HASH",
	"ALLOWED_ORIGINS", "DEV_MODE", "EXPORT_DIR", "EXPORT_INTERVAL", "DUPLICATE_DELTA_E",
}

// clearEnv unsets every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	config, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	assert.Equal(t, "sqlite", config.DatabaseType)
	assert.Equal(t, 24*time.Hour, config.ExportInterval)
	assert.True(t, config.DevMode)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "config.yaml", `
httpPort: ":9090"
dbType: postgres
dbName: charts
allowedOrigins:
  - https://markers.example.com
devMode: false
jwtSecret: from-file
exportDir: /var/exports
exportInterval: 2h
duplicateDeltaE: 1.5
`)
	t.Setenv("CONFIG_FILE", path)

	config, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":9090", config.HTTPPort)
	assert.Equal(t, "postgres", config.DatabaseType)
	assert.Equal(t, "charts", config.DatabaseName)
	assert.Equal(t, "postgres", config.DatabaseUser)
	assert.Equal(t, []string{"https://markers.example.com"}, config.AllowedOrigins)
	assert.False(t, config.DevMode)
	assert.Equal(t, "from-file", config.JwtSecret)
	assert.Equal(t, "/var/exports", config.ExportDir)
	assert.Equal(t, 2*time.Hour, config.ExportInterval)
	assert.Equal(t, 1.5, config.DuplicateDeltaE)
}

func TestYAMLWithoutDevModeKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeFile(t, "config.yaml", "dbName: charts\n"))

	config, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.True(t, config.DevMode)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeFile(t, "config.yaml", "httpPort: \":9090\"\nexportInterval: 2h\n"))
	t.Setenv("HTTP_PORT", ":7070")
	t.Setenv("EXPORT_INTERVAL", "15m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DEV_MODE", "false")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_ACCESS_DURATION", "120")
	t.Setenv("DUPLICATE_DELTA_E", "2.25")

	config, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":7070", config.HTTPPort)
	assert.Equal(t, 15*time.Minute, config.ExportInterval)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.AllowedOrigins)
	assert.False(t, config.DevMode)
	assert.Equal(t, 120, config.JwtAccessDuration)
	assert.Equal(t, 2.25, config.DuplicateDeltaE)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := writeFile(t, ".env", "DB_NAME=from-dotenv\nSQLITE_PATH=/tmp/markers.db\n")

	config, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", config.DatabaseName)
	assert.Equal(t, "/tmp/markers.db", config.SQLitePath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown driver", key: "DB_TYPE", val: "mysql"},
		{name: "bad interval", key: "EXPORT_INTERVAL", val: "daily"},
		{name: "negative interval", key: "EXPORT_INTERVAL", val: "-1h"},
		{name: "bad delta", key: "DUPLICATE_DELTA_E", val: "close"},
		{name: "negative delta", key: "DUPLICATE_DELTA_E", val: "-1"},
		{name: "default secret outside dev", key: "DEV_MODE", val: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load(missingEnvFile(t))
	assert.Error(t, err)
}
