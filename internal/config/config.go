// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the portal gateway
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Backend  BackendConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains session token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// BackendConfig contains the upstream loyalty backend configuration
type BackendConfig struct {
	BaseURL           string
	APIToken          string
	Timeout           time.Duration
	RetryReads        bool
	RequestsPerSecond float64
	RequestBurst      int
}

// CacheConfig contains per-resource staleness windows.
// Catalog metadata is cached longer than balance, which is actively polled.
type CacheConfig struct {
	ProductTTL  time.Duration
	MetadataTTL time.Duration
	CompanyTTL  time.Duration
	BalanceTTL  time.Duration
	OrderTTL    time.Duration
	StatsTTL    time.Duration
}

// AuthConfig contains session and development login configuration
type AuthConfig struct {
	DevAutoLogin      bool
	DevManagerID      string
	DevManagerEmail   string
	DevManagerFirst   string
	DevManagerLast    string
	DevCompanyID      string
	DevCompanyName    string
	DevLoyaltyAccount string
	DevCompanyTier    string
	SessionExpiry     time.Duration
	NotificationLimit int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Loyalty Redemption Portal"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "3000"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			AccessTokenExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Backend: BackendConfig{
			BaseURL:           getEnv("LOYALTY_API_BASE_URL", "http://localhost:8080"),
			APIToken:          getEnv("LOYALTY_API_TOKEN", ""),
			Timeout:           getEnvAsDuration("LOYALTY_API_TIMEOUT", 10*time.Second),
			RetryReads:        getEnvAsBool("LOYALTY_API_RETRY_READS", true),
			RequestsPerSecond: getEnvAsFloat("LOYALTY_API_RPS", 50),
			RequestBurst:      getEnvAsInt("LOYALTY_API_BURST", 100),
		},
		Cache: CacheConfig{
			ProductTTL:  getEnvAsDuration("CACHE_PRODUCT_TTL", 5*time.Minute),
			MetadataTTL: getEnvAsDuration("CACHE_METADATA_TTL", 10*time.Minute),
			CompanyTTL:  getEnvAsDuration("CACHE_COMPANY_TTL", 5*time.Minute),
			BalanceTTL:  getEnvAsDuration("CACHE_BALANCE_TTL", 30*time.Second),
			OrderTTL:    getEnvAsDuration("CACHE_ORDER_TTL", 2*time.Minute),
			StatsTTL:    getEnvAsDuration("CACHE_STATS_TTL", 2*time.Minute),
		},
		Auth: AuthConfig{
			DevAutoLogin:      getEnvAsBool("AUTH_DEV_AUTOLOGIN", false),
			DevManagerID:      getEnv("AUTH_DEV_MANAGER_ID", "am-001"),
			DevManagerEmail:   getEnv("AUTH_DEV_MANAGER_EMAIL", "john.doe@acme.com"),
			DevManagerFirst:   getEnv("AUTH_DEV_MANAGER_FIRST_NAME", "John"),
			DevManagerLast:    getEnv("AUTH_DEV_MANAGER_LAST_NAME", "Doe"),
			DevCompanyID:      getEnv("AUTH_DEV_COMPANY_ID", "company-001"),
			DevCompanyName:    getEnv("AUTH_DEV_COMPANY_NAME", "ACME Corporation"),
			DevLoyaltyAccount: getEnv("AUTH_DEV_LOYALTY_ACCOUNT", "ACME-123456"),
			DevCompanyTier:    getEnv("AUTH_DEV_COMPANY_TIER", "GOLD"),
			SessionExpiry:     getEnvAsDuration("SESSION_EXPIRY", 24*time.Hour),
			NotificationLimit: getEnvAsInt("NOTIFICATION_LIMIT", 50),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate JWT secret
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	// Validate upstream backend configuration
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("LOYALTY_API_BASE_URL is required")
	}

	// Validate Redis configuration
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	// Validate server port
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	// The mock identity fallback must never be active in production
	if c.Auth.DevAutoLogin && c.IsProduction() {
		return fmt.Errorf("AUTH_DEV_AUTOLOGIN must be disabled when APP_ENV=production")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
