package session

import (
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/cache"
	"github.com/google/uuid"
)

// Store keeps the active sessions in memory. Logged-out session ids are
// remembered until they would have expired so a replayed cookie cannot bring
// them back.
type Store struct {
	ttl      time.Duration
	sessions *cache.InMemory[*Session]
	revoked  *cache.InMemory[struct{}]
	now      func() time.Time
}

// NewStore creates a store whose sessions last ttl unless the remote token
// expires earlier or later.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: cache.New[*Session](ttl),
		revoked:  cache.New[struct{}](ttl),
		now:      time.Now,
	}
}

// Create opens a session for token and user.
func (s *Store) Create(token string, user domain.User) *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		Token:     token,
		User:      user,
		ExpiresAt: TokenExpiry(token, now, s.ttl),
	}
	s.put(sess, now)
	return sess
}

// Get returns a live session by id.
func (s *Store) Get(id string) (*Session, bool) {
	sess, ok := s.sessions.Get(id)
	if !ok || sess.Expired(s.now()) {
		return nil, false
	}
	return sess, true
}

// Restore puts back a session decoded from a cookie. It refuses expired and
// logged-out sessions.
func (s *Store) Restore(sess *Session) bool {
	now := s.now()
	if sess == nil || sess.ID == "" || sess.Expired(now) {
		return false
	}
	if _, revoked := s.revoked.Get(sess.ID); revoked {
		return false
	}
	if existing, ok := s.Get(sess.ID); ok {
		*sess = *existing
		return true
	}
	s.put(sess, now)
	return true
}

// Delete ends a session.
func (s *Store) Delete(sess *Session) {
	if sess == nil {
		return
	}
	s.sessions.Delete(sess.ID)
	if ttl := sess.ExpiresAt.Sub(s.now()); ttl > 0 {
		s.revoked.SetWithTTL(sess.ID, struct{}{}, ttl)
	}
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}

// Close stops the background cleanup.
func (s *Store) Close() {
	s.sessions.Close()
	s.revoked.Close()
}

func (s *Store) put(sess *Session, now time.Time) {
	ttl := s.ttl
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(now)
	}
	if ttl <= 0 {
		return
	}
	s.sessions.SetWithTTL(sess.ID, sess, ttl)
}
