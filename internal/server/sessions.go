package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-storyboard-kit/pkg/chat"
)

// SessionStore は訪問者ごとの会話を ID で保持します。
// 最後の利用から ttl が経過した会話は破棄されます。
type SessionStore struct {
	items *cache.Cache
	ttl   time.Duration
}

// NewSessionStore は ttl で失効する会話レジストリを作成します。
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		items: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Add は会話を登録して新しい ID を返します。
func (s *SessionStore) Add(conv *chat.Conversation) string {
	id := uuid.NewString()
	s.items.Set(id, conv, s.ttl)
	return id
}

// Get は ID に対応する会話を返し、有効期限を延長します。
func (s *SessionStore) Get(id string) (*chat.Conversation, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	conv, ok := v.(*chat.Conversation)
	if !ok {
		return nil, false
	}
	s.items.Set(id, conv, s.ttl)
	return conv, true
}

// Len は保持している会話の数を返します。失効済みでも未掃除のものを含みます。
func (s *SessionStore) Len() int {
	return s.items.ItemCount()
}
