package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"messenger/backend/internal/account"
	"messenger/backend/internal/api/handler"
	"messenger/backend/internal/config"
	"messenger/backend/internal/conversation"
	"messenger/backend/internal/models"
	"messenger/backend/internal/moderation"
	"messenger/backend/internal/storage"
	"messenger/backend/internal/telegram"
	"messenger/backend/internal/verification"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services map to conflicts.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatParticipant{},
		&models.Message{},
		&models.Report{},
		&models.VerificationCode{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Messenger Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	var notifier moderation.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to start Telegram notifier: %v", err)
		}
		notifier = n
		log.Println("Telegram report notifications enabled.")
	}

	h := handler.NewHandler(
		account.NewService(s, []byte(cfg.JWTSecret)),
		conversation.NewService(s),
		moderation.NewService(s, notifier),
		verification.NewService(s),
		s,
		cfg.DevMode,
	)
	r := handler.NewRouter(h)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
