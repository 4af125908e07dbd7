// README: Config loader with env defaults for HTTP, Firebase, Postgres, Redis, Maps, Telegram and Kafka.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type PricingConfig struct {
	CacheTTL time.Duration
}

type TelegramConfig struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Timeout  time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
	Pricing  PricingConfig
	Telegram TelegramConfig
	Admin    struct {
		Role string
	}
}

var ErrMissingProjectID = errors.New("TVIRTI_FIREBASE_PROJECT_ID is required")

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TVIRTI_HTTP_ADDR", ":8080")
	cfg.Firebase.ProjectID = os.Getenv("TVIRTI_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("TVIRTI_FIREBASE_CREDENTIALS")
	cfg.DB.DSN = os.Getenv("TVIRTI_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TVIRTI_REDIS_ADDR")
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Kafka.Brokers = envList("TVIRTI_KAFKA_BROKERS")
	cfg.Kafka.Topic = envOrDefault("TVIRTI_KAFKA_TOPIC", "order-events")
	cfg.Pricing.CacheTTL = time.Duration(envOrDefaultInt("TVIRTI_PRICING_CACHE_TTL_SECONDS", 60)) * time.Second
	cfg.Telegram.BaseURL = envOrDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.Telegram.Timeout = time.Duration(envOrDefaultFloat("TELEGRAM_TIMEOUT_SECONDS", 5) * float64(time.Second))
	cfg.Admin.Role = envOrDefault("TVIRTI_ADMIN_ROLE", "admin")

	if cfg.Firebase.ProjectID == "" {
		return cfg, ErrMissingProjectID
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
