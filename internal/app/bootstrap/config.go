package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheBackendRedis keeps entries in redis with a TTL; CacheBackendFile
// keeps one durable file per entry for single-process deployments.
const (
	CacheBackendRedis = "redis"
	CacheBackendFile  = "file"
)

type Config struct {
	ServiceID string

	HTTPPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string

	CacheBackend  string
	CacheDir      string
	StoreCacheTTL time.Duration

	AdminAPIKey string

	MaxDBConns int32

	KafkaTopicStoreUpdated      string
	KafkaTopicCommissionUpdated string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL                 string   `yaml:"postgres_url"`
		RedisURL                    string   `yaml:"redis_url"`
		KafkaBrokers                []string `yaml:"kafka_brokers"`
		KafkaTopicStoreUpdated      string   `yaml:"kafka_topic_store_updated"`
		KafkaTopicCommissionUpdated string   `yaml:"kafka_topic_commission_updated"`
	} `yaml:"dependencies"`
	Cache struct {
		Backend    string `yaml:"backend"`
		Dir        string `yaml:"dir"`
		TTLSeconds int    `yaml:"ttl_seconds"`
	} `yaml:"cache"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                   "storefront-service",
		HTTPPort:                    8080,
		MaxDBConns:                  20,
		CacheBackend:                CacheBackendRedis,
		CacheDir:                    "data/static-stores",
		StoreCacheTTL:               3600 * time.Second,
		KafkaTopicStoreUpdated:      "store.updated",
		KafkaTopicCommissionUpdated: "commission.updated",
		OutboxPollInterval:          2 * time.Second,
		OutboxBatchSize:             100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicStoreUpdated != "" {
			cfg.KafkaTopicStoreUpdated = f.Dependencies.KafkaTopicStoreUpdated
		}
		if f.Dependencies.KafkaTopicCommissionUpdated != "" {
			cfg.KafkaTopicCommissionUpdated = f.Dependencies.KafkaTopicCommissionUpdated
		}
		if f.Cache.Backend != "" {
			cfg.CacheBackend = f.Cache.Backend
		}
		if f.Cache.Dir != "" {
			cfg.CacheDir = f.Cache.Dir
		}
		if f.Cache.TTLSeconds > 0 {
			cfg.StoreCacheTTL = time.Duration(f.Cache.TTLSeconds) * time.Second
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicStoreUpdated = envOrDefault("KAFKA_TOPIC_STORE_UPDATED", cfg.KafkaTopicStoreUpdated)
	cfg.KafkaTopicCommissionUpdated = envOrDefault("KAFKA_TOPIC_COMMISSION_UPDATED", cfg.KafkaTopicCommissionUpdated)
	cfg.CacheBackend = envOrDefault("CACHE_BACKEND", cfg.CacheBackend)
	cfg.CacheDir = envOrDefault("CACHE_DIR", cfg.CacheDir)
	cfg.StoreCacheTTL = time.Duration(envInt("STORE_CACHE_TTL_SECONDS", int(cfg.StoreCacheTTL.Seconds()))) * time.Second
	cfg.AdminAPIKey = envOrDefault("ADMIN_API_KEY", envOrDefault("MERCACIO_API_KEY", cfg.AdminAPIKey))
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.CacheBackend != CacheBackendRedis && cfg.CacheBackend != CacheBackendFile {
		return Config{}, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
	if cfg.CacheBackend == CacheBackendRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL for redis cache backend")
	}
	if cfg.AdminAPIKey == "" {
		return Config{}, fmt.Errorf("missing ADMIN_API_KEY")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
