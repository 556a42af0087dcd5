// Package account covers registration, first-contact login by phone, user
// search and bearer token issuance.
package account

import (
	"errors"
	"strings"
	"time"

	"messenger/backend/internal/apperr"
	"messenger/backend/internal/config"
	"messenger/backend/internal/models"
	"messenger/backend/internal/storage"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	Storage storage.Storage
	Secret  []byte
}

func NewService(s storage.Storage, secret []byte) *Service {
	return &Service{Storage: s, Secret: secret}
}

// Registration is the registration/login request body. Password is optional
// in the phone-verified flow.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Register creates an account and issues a token. When the phone is already
// bound to an account the existing row is returned instead (upsert-like
// first contact); a duplicate username or phone otherwise is a conflict.
// The second return is the issued token, the third reports whether a new
// row was inserted.
func (s *Service) Register(req Registration) (*models.User, string, bool, error) {
	username := strings.TrimSpace(req.Username)
	phone := strings.TrimSpace(req.Phone)

	if phone != "" {
		existing, err := s.Storage.GetUserByPhone(phone)
		if err != nil {
			return nil, "", false, err
		}
		if existing != nil {
			token, err := s.IssueToken(existing.ID)
			if err != nil {
				return nil, "", false, err
			}
			return existing, token, false, nil
		}
	}

	if username == "" {
		return nil, "", false, apperr.Validation("Username required")
	}

	user := &models.User{
		Username: username,
		FullName: strings.TrimSpace(req.FullName),
	}
	if phone != "" {
		user.Phone = &phone
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, "", false, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.Storage.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", false, apperr.Conflict("Username already exists")
		}
		return nil, "", false, err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", false, err
	}
	return user, token, true, nil
}

// IssueToken signs a bearer JWT for the user. Note: nothing in the system
// validates these tokens; the X-User-Id header is the trust mechanism, and
// the token exists only to satisfy the client contract.
func (s *Service) IssueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"exp": time.Now().Add(config.TokenTTL).Unix(),
		"iss": "messenger-api",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Search finds users by a case-insensitive substring of their username or
// full name.
func (s *Service) Search(query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("Search query required")
	}
	return s.Storage.SearchUsers(query, config.SearchLimit)
}
