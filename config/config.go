package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubUserID       string

	// Entry gate configuration
	EntrySessionTTL time.Duration

	// Capacity cache configuration
	CapacityCacheTTL time.Duration

	// Cleanup configuration
	CleanupInterval time.Duration

	// Payout gateway configuration
	PayoutProvider  string
	PayoutBaseURL   string
	PayoutMerchant  string
	PayoutSecretKey string
	PayoutTimeout   time.Duration

	// Bcrypt hash of the shared webhook token (generate with the
	// hash-credential command). Empty disables the token check.
	PayoutWebhookTokenHash string

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubUserID:       getEnv("PUBNUB_USER_ID", "booking-server"),

		// Entry gate
		EntrySessionTTL: getEnvAsDuration("ENTRY_SESSION_TTL", "1h"),

		// Capacity cache
		CapacityCacheTTL: getEnvAsDuration("CAPACITY_CACHE_TTL", "30s"),

		// Cleanup
		CleanupInterval: getEnvAsDuration("CLEANUP_INTERVAL", "5m"),

		// Payout gateway
		PayoutProvider:  getEnv("PAYOUT_PROVIDER", "jdb"),
		PayoutBaseURL:   getEnv("PAYOUT_BASE_URL", ""),
		PayoutMerchant:  getEnv("PAYOUT_MERCHANT_ID", ""),
		PayoutSecretKey: getEnv("PAYOUT_SECRET_KEY", ""),
		PayoutTimeout:   getEnvAsDuration("PAYOUT_TIMEOUT", "15s"),

		PayoutWebhookTokenHash: getEnv("PAYOUT_WEBHOOK_TOKEN_HASH", ""),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
