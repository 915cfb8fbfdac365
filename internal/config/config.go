package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"shop-agent/internal/logger"
)

// AppConfig holds all application configuration
type AppConfig struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Supabase  SupabaseConfig
	LLM       LLMConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// SupabaseConfig holds the catalog collaborator configuration
type SupabaseConfig struct {
	URL    string
	APIKey string
}

// LLMConfig holds model provider configuration
type LLMConfig struct {
	// APIKeys is the ordered credential list; the gateway tries them in
	// order and rotates on rate-limit responses.
	APIKeys        []string
	Model          string
	RequestTimeout time.Duration
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret       []byte
	TokenExpiration time.Duration
}

// RateLimitConfig holds per-user admission policy
type RateLimitConfig struct {
	Driver        string // memory, postgres or redis
	WindowSeconds int
	MaxRequests   int
	RedisAddr     string
}

// LoadConfig loads and validates application configuration from environment
func LoadConfig() (*AppConfig, error) {
	config := &AppConfig{}

	config.Server = ServerConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8080"),
	}

	config.Database = DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "postgres"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		Name:     getEnvOrDefault("DB_NAME", "shopagent"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}

	config.Supabase = SupabaseConfig{
		URL:    os.Getenv("SUPABASE_URL"),
		APIKey: os.Getenv("SUPABASE_ANON_KEY"),
	}
	if config.Supabase.URL == "" {
		logger.Log.Warn("SUPABASE_URL environment variable not set")
	}

	apiKeys := parseKeyList(os.Getenv("OPENROUTER_API_KEYS"))
	if len(apiKeys) == 0 {
		// Single-key fallback kept for older deployments
		if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
			apiKeys = []string{key}
		}
	}
	if len(apiKeys) == 0 {
		logger.Log.Warn("OPENROUTER_API_KEYS environment variable not set")
	}

	config.LLM = LLMConfig{
		APIKeys:        apiKeys,
		Model:          getEnvOrDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		RequestTimeout: getEnvAsDuration("OPENROUTER_TIMEOUT", 60*time.Second),
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters (current length: %d)", len(jwtSecret))
	}

	config.Auth = AuthConfig{
		JWTSecret:       []byte(jwtSecret),
		TokenExpiration: getEnvAsDuration("JWT_TOKEN_EXPIRATION", 24*time.Hour),
	}

	config.RateLimit = RateLimitConfig{
		Driver:        getEnvOrDefault("RATE_LIMIT_DRIVER", "postgres"),
		WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 600),
		MaxRequests:   getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 20),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
	}

	return config, nil
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// parseKeyList splits a comma-separated credential list, dropping empties
func parseKeyList(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logger.Log.WithField("key", key).Warnf("Invalid integer value, using default %d", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logger.Log.WithField("key", key).Warnf("Invalid duration value, using default %s", defaultValue)
		return defaultValue
	}
	return value
}
