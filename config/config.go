// Package config assembles service settings from built-in defaults, an
// optional YAML file, a .env file and the process environment, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the service reads.
type Config struct {
	HTTPPort          string        `yaml:"httpPort"`
	DatabaseType      string        `yaml:"dbType"`
	DatabaseHost      string        `yaml:"dbHost"`
	DatabaseUser      string        `yaml:"dbUser"`
	DatabasePassword  string        `yaml:"dbPassword"`
	DatabaseName      string        `yaml:"dbName"`
	SSLMode           string        `yaml:"sslMode"`
	SQLitePath        string        `yaml:"sqlitePath"`
	JwtSecret         string        `yaml:"jwtSecret"`
	JwtAccessDuration int           `yaml:"jwtAccessDuration"` // seconds
	AdminPasswordHash string        `yaml:"adminPasswordHash"`
	AllowedOrigins    []string      `yaml:"allowedOrigins"`
	DevMode           bool          `yaml:"devMode"`
	ExportDir         string        `yaml:"exportDir"`
	ExportInterval    time.Duration `yaml:"exportInterval"`
	DuplicateDeltaE   float64       `yaml:"duplicateDeltaE"`
}

const DefaultJwtSecret = "your-secret-key-change-this"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTPPort:          ":8080",
		DatabaseType:      "sqlite",
		DatabaseHost:      "localhost",
		DatabaseUser:      "postgres",
		DatabaseName:      "markersinorder",
		SSLMode:           "disable",
		SQLitePath:        "data/markersinorder.db",
		JwtSecret:         DefaultJwtSecret,
		JwtAccessDuration: 3600,
		AllowedOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
		DevMode:           true,
		ExportInterval:    24 * time.Hour,
		DuplicateDeltaE:   0,
	}
}

// Load builds the configuration. envFiles default to ".env"; a missing .env
// file is not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading env file %s: %w", file, err)
		}
	}

	config := Default()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		fileConfig, set, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		config = mergeConfigs(config, fileConfig, set)
	}

	if err := applyEnv(&config); err != nil {
		return Config{}, err
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, fileOverrides, error) {
	var config Config
	var set fileOverrides
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, set, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, set, err
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Config{}, set, err
	}
	return config, set, nil
}

// fileOverrides lists which keys a YAML document actually set, so that a
// literal false or zero can still override a default.
type fileOverrides struct {
	DevMode *bool `yaml:"devMode"`
}

// mergeConfigs merges 'overlay' into 'base'. Empty overlay values keep base.
func mergeConfigs(base, overlay Config, set fileOverrides) Config {
	merged := base

	setString := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}

	setString(&merged.HTTPPort, overlay.HTTPPort)
	setString(&merged.DatabaseType, overlay.DatabaseType)
	setString(&merged.DatabaseHost, overlay.DatabaseHost)
	setString(&merged.DatabaseUser, overlay.DatabaseUser)
	setString(&merged.DatabasePassword, overlay.DatabasePassword)
	setString(&merged.DatabaseName, overlay.DatabaseName)
	setString(&merged.SSLMode, overlay.SSLMode)
	setString(&merged.SQLitePath, overlay.SQLitePath)
	setString(&merged.JwtSecret, overlay.JwtSecret)
	setString(&merged.AdminPasswordHash, overlay.AdminPasswordHash)
	setString(&merged.ExportDir, overlay.ExportDir)

	if overlay.JwtAccessDuration != 0 {
		merged.JwtAccessDuration = overlay.JwtAccessDuration
	}
	if len(overlay.AllowedOrigins) > 0 {
		merged.AllowedOrigins = overlay.AllowedOrigins
	}
	if overlay.ExportInterval != 0 {
		merged.ExportInterval = overlay.ExportInterval
	}
	if overlay.DuplicateDeltaE != 0 {
		merged.DuplicateDeltaE = overlay.DuplicateDeltaE
	}
	if set.DevMode != nil {
		merged.DevMode = *set.DevMode
	}

	return merged
}

func applyEnv(config *Config) error {
	config.HTTPPort = getEnv("HTTP_PORT", config.HTTPPort)
	config.DatabaseType = getEnv("DB_TYPE", config.DatabaseType)
	config.DatabaseHost = getEnv("DB_HOST", config.DatabaseHost)
	config.DatabaseUser = getEnv("DB_USER", config.DatabaseUser)
	config.DatabasePassword = getEnv("DB_PASSWORD", config.DatabasePassword)
	config.DatabaseName = getEnv("DB_NAME", config.DatabaseName)
	config.SSLMode = getEnv("SSL_MODE", config.SSLMode)
	config.SQLitePath = getEnv("SQLITE_PATH", config.SQLitePath)
	config.JwtSecret = getEnv("JWT_SECRET", config.JwtSecret)
	config.JwtAccessDuration = getEnvInt("JWT_ACCESS_DURATION", config.JwtAccessDuration)
	config.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", config.AdminPasswordHash)
	config.AllowedOrigins = getEnvSlice("ALLOWED_ORIGINS", config.AllowedOrigins)
	config.DevMode = getEnvBool("DEV_MODE", config.DevMode)
	config.ExportDir = getEnv("EXPORT_DIR", config.ExportDir)

	if value := getEnv("EXPORT_INTERVAL", ""); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid EXPORT_INTERVAL %q: %w", value, err)
		}
		config.ExportInterval = interval
	}

	if value := getEnv("DUPLICATE_DELTA_E", ""); value != "" {
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid DUPLICATE_DELTA_E %q: %w", value, err)
		}
		config.DuplicateDeltaE = threshold
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseType {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DatabaseType)
	}
	if c.ExportInterval <= 0 {
		return fmt.Errorf("EXPORT_INTERVAL must be positive, got %s", c.ExportInterval)
	}
	if c.DuplicateDeltaE < 0 {
		return fmt.Errorf("DUPLICATE_DELTA_E must not be negative, got %v", c.DuplicateDeltaE)
	}
	if c.JwtAccessDuration <= 0 {
		return fmt.Errorf("JWT_ACCESS_DURATION must be positive, got %d", c.JwtAccessDuration)
	}
	if !c.DevMode && c.JwtSecret == DefaultJwtSecret {
		return errors.New("JWT_SECRET must be set when DEV_MODE is false")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value, _ := os.LookupEnv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
