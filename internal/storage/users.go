package storage

import (
	"errors"
	"log"
	"strings"

	"messenger/backend/internal/models"

	"gorm.io/gorm"
)

// CreateUser inserts a new account. Unique violations on username or phone
// surface as gorm.ErrDuplicatedKey for the caller to map.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		return err
	}
	log.Printf("INFO: New user %d (%s) registered.", user.ID, user.Username)
	return nil
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByPhone returns the account bound to phone, or nil when the phone
// has never been seen. Used by the first-contact login path.
func (s *Service) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchUsers matches query as a case-insensitive substring of username or
// full name.
func (s *Service) SearchUsers(query string, limit int) ([]models.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var users []models.User
	err := s.DB.
		Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		log.Printf("ERROR: Failed to search users for %q: %v", query, err)
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}
