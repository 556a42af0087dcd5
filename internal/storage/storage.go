package storage

import (
	"context"
	"time"

	"messenger/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	SearchUsers(query string, limit int) ([]models.User, error)
	UpdateUser(user *models.User) error

	// Conversations
	GetOrCreateChat(a, b uint) (uint, error)
	SaveMessage(msg *models.Message) error
	ListChatSummaries(userID uint) ([]models.ChatSummary, error)
	FetchAndMarkRead(chatID, viewerID uint) ([]models.MessageView, error)

	// Reports
	SaveReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	ListReports(limit int) ([]models.ReportView, error)
	ReviewReport(reportID uint, status string, adminID uint) error

	// Verification codes
	IssueCode(phone, code string, expiresAt time.Time) error
	ConsumeCode(phone, code string, now time.Time) (bool, error)

	// Presence
	TouchPresence(userID uint) error
	IsOnline(userID uint) (bool, error)
}

// Service implements Storage on PostgreSQL (via gorm) and Redis. Redis may
// be nil (admin CLI, tests); presence then reports offline and pair locks
// degrade to the unique index alone.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
