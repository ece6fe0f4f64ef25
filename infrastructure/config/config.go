package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Store configuration
	MongoURI      string
	MongoDatabase string

	// Cache configuration (optional - empty URL disables caching)
	RedisURL string

	// Payment configuration (optional - empty key disables checkout)
	StripeSecretKey string
	FrontendURL     string

	// CORS
	EnableCORS     bool
	AllowedOrigins []string

	// Logging
	LogLevel string

	// Authentication
	JWTSecret     string
	JWTIssuer     string
	AdminEmail    string
	AdminPassword string

	// Rate limiting
	APIRateLimit    int
	WriteRateLimit  int
	RateLimitWindow time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":"+getEnv("PORT", "3001")),
		Environment:   getEnv("ENVIRONMENT", "development"),

		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "nova-marketplace"),

		RedisURL: getEnv("REDIS_URL", ""),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),

		EnableCORS:     getEnvBool("ENABLE_CORS", true),
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "nova-marketplace"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@novamarket.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		APIRateLimit:    getEnvInt("API_RATE_LIMIT", 100),
		WriteRateLimit:  getEnvInt("WRITE_RATE_LIMIT", 20),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	// Reject the placeholder URI shipped in .env templates
	if strings.Contains(c.MongoURI, "your-username") || strings.Contains(c.MongoURI, "your-password") {
		return fmt.Errorf("MONGODB_URI is not configured: replace the placeholder connection string")
	}

	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
