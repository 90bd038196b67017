package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional price cache)
	Database DatabaseConfig

	// Redis (optional fact cache)
	Redis RedisConfig

	// External providers
	Yahoo     YahooConfig
	Finviz    FinvizConfig
	Sentiment SentimentConfig

	// Screener
	Screener ScreenerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration for the price cache.
// An empty URL disables the cache and the screener fetches directly.
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration for the fact cache
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	FactTTL  time.Duration // 팩트 스냅샷 캐시 TTL
}

// YahooConfig holds the market data provider configuration
type YahooConfig struct {
	BaseURL       string
	RatePerSecond float64 // chart API 호출 상한
	Burst         int
}

// FinvizConfig holds the fundamentals snapshot provider configuration
type FinvizConfig struct {
	BaseURL       string
	UserAgent     string
	RatePerSecond float64
	Burst         int
}

// SentimentConfig holds the sentiment API configuration
type SentimentConfig struct {
	BaseURL string
	APIKey  string
}

// ScreenerConfig holds orchestrator tuning knobs
type ScreenerConfig struct {
	Workers      int           // bounded worker pool size
	FetchTimeout time.Duration // per external call
	RunDeadline  time.Duration // overall run deadline
	ProfilePath  string        // rule catalogue YAML ("" = built-in default)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8086"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			FactTTL:  getEnvAsDuration("REDIS_FACT_TTL", "1h"),
		},

		// External providers
		Yahoo: YahooConfig{
			BaseURL:       getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			RatePerSecond: getEnvAsFloat("YAHOO_RATE_PER_SECOND", 4),
			Burst:         getEnvAsInt("YAHOO_BURST", 4),
		},
		Finviz: FinvizConfig{
			BaseURL:       getEnv("FINVIZ_BASE_URL", "https://finviz.com"),
			UserAgent:     getEnv("FINVIZ_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
			RatePerSecond: getEnvAsFloat("FINVIZ_RATE_PER_SECOND", 1),
			Burst:         getEnvAsInt("FINVIZ_BURST", 1),
		},
		Sentiment: SentimentConfig{
			BaseURL: getEnv("SENTIMENT_BASE_URL", ""),
			APIKey:  getEnv("SENTIMENT_API_KEY", ""),
		},

		// Screener
		Screener: ScreenerConfig{
			Workers:      getEnvAsInt("SCREENER_WORKERS", 4),
			FetchTimeout: getEnvAsDuration("SCREENER_FETCH_TIMEOUT", "30s"),
			RunDeadline:  getEnvAsDuration("SCREENER_RUN_DEADLINE", "5m"),
			ProfilePath:  getEnv("SCREENER_PROFILE", ""),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Screener.Workers < 1 {
		return fmt.Errorf("SCREENER_WORKERS must be at least 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
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
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
