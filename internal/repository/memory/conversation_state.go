package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ConversationState remembers which conversation a user last interacted with
// so a page reload lands on the same thread. It is a pure convenience cache:
// losing an entry only means falling back to the first conversation.
type ConversationState struct {
	cache *cache.Cache
}

func NewConversationState() *ConversationState {
	// Entries expire after an hour of inactivity and are purged every 10
	// minutes, mirroring the session TTL order of magnitude.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationState{
		cache: c,
	}
}

func (s *ConversationState) SetActive(employeeId, conversationName string) {
	s.cache.Set(employeeId, conversationName, cache.DefaultExpiration)
}

func (s *ConversationState) GetActive(employeeId string) (string, bool) {
	if x, found := s.cache.Get(employeeId); found {
		return x.(string), true
	}
	return "", false
}

func (s *ConversationState) Forget(employeeId string) {
	s.cache.Delete(employeeId)
}
