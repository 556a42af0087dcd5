// Package config holds runtime settings and tuning constants for the
// messenger backend. Settings come from the environment (loaded via .env in
// development) with insecure development defaults.
package config

import (
	"os"
	"time"
)

const (
	// Verification codes
	CodeTTL = 5 * time.Minute
	CodeMin = 100000
	CodeMax = 999999

	// Presence: a user counts as online for this long after their last
	// authenticated request.
	PresenceTTL = 2 * time.Minute

	// Advisory lock held while creating a chat for a participant pair.
	PairLockTTL = 5 * time.Second

	// Issued tokens expire after this long. Nothing validates them; the
	// X-User-Id header is the trust boundary.
	TokenTTL = 72 * time.Hour

	// Admin report listing page size.
	ReportPageSize = 50

	// User search result cap.
	SearchLimit = 20
)

type Config struct {
	ListenAddr     string
	DatabaseDSN    string
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	TelegramToken  string
	TelegramChatID string
	DevMode        bool
}

// Load reads configuration from the environment, falling back to
// development defaults suitable for the docker-compose setup.
func Load() *Config {
	cfg := &Config{
		ListenAddr:  ":8080",
		DatabaseDSN: "host=localhost user=user password=password dbname=messengerdb port=5432 sslmode=disable",
		RedisAddr:   "localhost:6379",
		JWTSecret:   "dev-secret-change-me",
		DevMode:     true,
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_ADMIN_CHAT_ID")
	if os.Getenv("PRODUCTION") != "" {
		cfg.DevMode = false
	}
	return cfg
}
