// Package verification issues and checks SMS codes used for phone
// possession proof. Codes are 6 digits, single-use and expire after
// config.CodeTTL; issuing a new code invalidates all prior unused codes
// for the phone.
package verification

import (
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"messenger/backend/internal/apperr"
	"messenger/backend/internal/config"
	"messenger/backend/internal/storage"
)

type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Issue generates and stores a fresh code for the phone, returning it in
// plaintext for the development-mode response. No SMS gateway is attached;
// the code is also written to the server log.
func (s *Service) Issue(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", apperr.Validation("Phone number required")
	}

	code := strconv.Itoa(config.CodeMin + rand.IntN(config.CodeMax-config.CodeMin+1))
	if err := s.Storage.IssueCode(phone, code, time.Now().Add(config.CodeTTL)); err != nil {
		return "", err
	}
	log.Printf("INFO: SMS code for %s: %s", phone, code)
	return code, nil
}

// Verify reports whether code is the phone's live code. A mismatch or an
// expired code counts as a failed attempt.
func (s *Service) Verify(phone, code string) (bool, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" {
		return false, apperr.Validation("Phone number required")
	}
	if code == "" {
		return false, apperr.Validation("Code required")
	}
	return s.Storage.ConsumeCode(phone, code, time.Now())
}
