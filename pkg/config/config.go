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

	// Database (score history / watchlist persistence)
	Database DatabaseConfig

	// Redis (listing cache)
	Redis RedisConfig

	// External APIs
	Naver NaverConfig

	// Scan pipeline
	Scan ScanConfig

	// Auto monitor
	Monitor MonitorConfig

	// Notification
	Notify NotifyConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// NaverConfig holds Naver Finance / Naver News configuration
type NaverConfig struct {
	ChartBaseURL string // daily OHLCV
	StockBaseURL string // stock info, rankings, listings
	NewsBaseURL  string // news search
	RatePerSec   float64
	Burst        int
}

// ScanConfig holds scan pipeline configuration
type ScanConfig struct {
	Workers      int           // fetch worker pool width
	BatchSize    int           // codes per batch
	SnapshotTTL  time.Duration // price/volume snapshot cache TTL
	ListingTTL   time.Duration // instrument listing cache TTL
	LookbackDays int           // price history window requested upstream
}

// MonitorConfig holds auto-monitor configuration
type MonitorConfig struct {
	Schedule          string // cron expression
	MinScoreThreshold int    // alert when a score first crosses this
	IncreaseThreshold int    // alert when a score jumps by this many points
}

// NotifyConfig holds email notification configuration
type NotifyConfig struct {
	EmailEnabled bool
	EmailTo      string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
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
		},

		// External APIs
		Naver: NaverConfig{
			ChartBaseURL: getEnv("NAVER_CHART_BASE_URL", "https://fchart.stock.naver.com"),
			StockBaseURL: getEnv("NAVER_STOCK_BASE_URL", "https://m.stock.naver.com"),
			NewsBaseURL:  getEnv("NAVER_NEWS_BASE_URL", "https://search.naver.com"),
			RatePerSec:   getEnvAsFloat("NAVER_RATE_PER_SEC", 5.0),
			Burst:        getEnvAsInt("NAVER_RATE_BURST", 5),
		},

		// Scan pipeline
		Scan: ScanConfig{
			Workers:      getEnvAsInt("SCAN_WORKERS", 10),
			BatchSize:    getEnvAsInt("SCAN_BATCH_SIZE", 50),
			SnapshotTTL:  getEnvAsDuration("SCAN_SNAPSHOT_TTL", "5m"),
			ListingTTL:   getEnvAsDuration("SCAN_LISTING_TTL", "24h"),
			LookbackDays: getEnvAsInt("SCAN_LOOKBACK_DAYS", 180),
		},

		// Auto monitor
		Monitor: MonitorConfig{
			Schedule:          getEnv("MONITOR_SCHEDULE", "0 0 9-16 * * 1-5"),
			MinScoreThreshold: getEnvAsInt("MONITOR_MIN_SCORE", 50),
			IncreaseThreshold: getEnvAsInt("MONITOR_INCREASE_THRESHOLD", 15),
		},

		// Notification
		Notify: NotifyConfig{
			EmailEnabled: getEnvAsBool("EMAIL_ENABLED", false),
			EmailTo:      getEnv("EMAIL_ADDRESS", ""),
			SMTPHost:     getEnv("SMTP_SERVER", "smtp.gmail.com"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Scan.Workers <= 0 {
		return fmt.Errorf("SCAN_WORKERS must be positive")
	}
	if c.Scan.BatchSize <= 0 {
		return fmt.Errorf("SCAN_BATCH_SIZE must be positive")
	}

	if c.Notify.EmailEnabled && c.Notify.EmailTo == "" {
		return fmt.Errorf("EMAIL_ADDRESS is required when EMAIL_ENABLED=true")
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

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fallback, _ := time.ParseDuration(defaultValue)
		return fallback
	}
	return value
}
