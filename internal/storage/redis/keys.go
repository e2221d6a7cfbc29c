package redis

import (
	"fmt"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

// accountKey returns the Redis key holding an account record
func (s *Storage) accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", s.cfg.KeyPrefix, id)
}

// accountIndexKey returns the Redis key for the SET of persisted account ids
func (s *Storage) accountIndexKey() string {
	return fmt.Sprintf("%s:idx:accounts", s.cfg.KeyPrefix)
}
