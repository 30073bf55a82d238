package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Job triggers
	PipelineAPIKey string

	CORSOrigins []string

	// Market data
	MarketFeed       string
	RequestTimeout   time.Duration
	LiveTickInterval time.Duration
	SentimentWorkers int

	ScoringConfigPath string
	Scoring           Scoring
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "alphafusion"),
		DBPassword: getEnv("DB_PASSWORD", "alphafusion"),
		DBName:     getEnv("DB_NAME", "alphafusion"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "alphafusion.db"),

		SessionSecret:  getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		MarketFeed:        strings.ToLower(getEnv("MARKET_FEED", "yahoo")),
		ScoringConfigPath: getEnv("SCORING_CONFIG", "configs/scoring.yaml"),
	}

	config.SessionTTL = getDuration("SESSION_TTL", 24*time.Hour)
	config.RequestTimeout = getDuration("REQUEST_TIMEOUT", 15*time.Second)
	config.LiveTickInterval = getDuration("LIVE_TICK_INTERVAL", 30*time.Second)
	config.SentimentWorkers = getInt("SENTIMENT_WORKERS", 10)

	scoring, err := LoadScoring(config.ScoringConfigPath)
	if err != nil {
		return nil, err
	}
	if v := os.Getenv("STATUS_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("Warning: invalid STATUS_THRESHOLD value '%s', keeping %.0f\n", v, scoring.StatusThreshold)
		} else {
			scoring.StatusThreshold = threshold
		}
	}
	config.Scoring = scoring

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
