package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"cipherspry/internal/wordsource"
)

// StaticProviderURL selects the built-in offline word provider
const StaticProviderURL = "static"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Game     GameConfig
	Provider ProviderConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds round-related configuration
type GameConfig struct {
	TickInterval       time.Duration // Length of one countdown unit
	SessionIdleTimeout time.Duration
}

// ProviderConfig holds word provider configuration
type ProviderConfig struct {
	URL     string // Pattern service endpoint, or "static"
	Timeout time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from a .env file (if any) and environment variables
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			TickInterval:       time.Duration(getEnvInt("TICK_INTERVAL_MS", 1000)) * time.Millisecond,
			SessionIdleTimeout: time.Duration(getEnvInt("SESSION_IDLE_TIMEOUT_MINUTES", 120)) * time.Minute,
		},
		Provider: ProviderConfig{
			URL:     getEnv("WORD_PROVIDER_URL", wordsource.DefaultURL),
			Timeout: time.Duration(getEnvInt("WORD_PROVIDER_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// UsesStaticProvider returns true when the offline word list is configured
func (c *Config) UsesStaticProvider() bool {
	return c.Provider.URL == StaticProviderURL
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as a positive integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}
