// Package storagetest provides a testify mock of storage.Storage for
// service and handler tests.
package storagetest

import (
	"time"

	"messenger/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

// User operations

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SearchUsers(query string, limit int) ([]models.User, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// Conversation operations

func (m *MockStorage) GetOrCreateChat(a, b uint) (uint, error) {
	args := m.Called(a, b)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) ListChatSummaries(userID uint) ([]models.ChatSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatSummary), args.Error(1)
}

func (m *MockStorage) FetchAndMarkRead(chatID, viewerID uint) ([]models.MessageView, error) {
	args := m.Called(chatID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MessageView), args.Error(1)
}

// Report operations

func (m *MockStorage) SaveReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockStorage) GetReportByID(id uint) (*models.Report, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) ListReports(limit int) ([]models.ReportView, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportView), args.Error(1)
}

func (m *MockStorage) ReviewReport(reportID uint, status string, adminID uint) error {
	args := m.Called(reportID, status, adminID)
	return args.Error(0)
}

// Verification code operations

func (m *MockStorage) IssueCode(phone, code string, expiresAt time.Time) error {
	args := m.Called(phone, code, expiresAt)
	return args.Error(0)
}

func (m *MockStorage) ConsumeCode(phone, code string, now time.Time) (bool, error) {
	args := m.Called(phone, code, now)
	return args.Bool(0), args.Error(1)
}

// Presence operations

func (m *MockStorage) TouchPresence(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) IsOnline(userID uint) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}
