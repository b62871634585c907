// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"
)

// Cache provides generic caching with per-entry TTL and prefix invalidation.
type Cache[T any] interface {
	Get(key string) (T, bool)
	SetWithTTL(key string, value T, ttl time.Duration)
	Delete(key string)
	DeletePrefix(prefix string) int
}

// SessionStore keeps the sessions of logged-in users.
type SessionStore interface {
	Create(token string, user domain.User) *session.Session
	Get(id string) (*session.Session, bool)
	Restore(s *session.Session) bool
	Delete(s *session.Session)
}

// MetricsRecorder is the subset of metrics the services report to.
type MetricsRecorder interface {
	RecordRequestDuration(operation string, d time.Duration)
	IncrCacheHit(cache string)
	IncrCacheMiss(cache string)
	IncrSessionOpened()
	IncrSessionClosed()
	AddTypeMismatches(n int)
}
