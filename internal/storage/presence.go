package storage

import (
	"fmt"

	"messenger/backend/internal/config"
)

func presenceKey(userID uint) string {
	return fmt.Sprintf("online:%d", userID)
}

func pairLockKey(pairKey string) string {
	return "lock:pair:" + pairKey
}

// TouchPresence marks the user online for config.PresenceTTL. Called on
// every authenticated request, so presence decays without a reaper.
func (s *Service) TouchPresence(userID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(s.Ctx, presenceKey(userID), "1", config.PresenceTTL).Err()
}

// IsOnline reports whether the user's presence key is still live.
func (s *Service) IsOnline(userID uint) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	n, err := s.Redis.Exists(s.Ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// acquirePairLock takes a short-lived advisory lock on a participant pair
// while its chat is being created. The lock is best-effort; the pair-key
// unique index is the actual guarantee.
func (s *Service) acquirePairLock(pairKey string) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	return s.Redis.SetNX(s.Ctx, pairLockKey(pairKey), "1", config.PairLockTTL).Result()
}

func (s *Service) releasePairLock(pairKey string) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(s.Ctx, pairLockKey(pairKey))
}
