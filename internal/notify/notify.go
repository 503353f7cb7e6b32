package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a user-facing message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultTTL is how long a notification stays visible before it is
// auto-dismissed.
const DefaultTTL = 3 * time.Second

// Notification is an ephemeral user-facing message emitted by store
// operations.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sink receives notifications. Implementations decide how messages are
// displayed and dismissed.
type Sink interface {
	Publish(message string, severity Severity)
}

// MemorySink keeps recent notifications in memory and drops them after
// a fixed TTL, mirroring a toast that auto-dismisses.
type MemorySink struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending []Notification
	now     func() time.Time
}

// NewMemorySink creates a sink with the given auto-dismiss TTL.
// A non-positive TTL falls back to DefaultTTL.
func NewMemorySink(ttl time.Duration) *MemorySink {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemorySink{ttl: ttl, now: time.Now}
}

// Publish records a notification.
func (s *MemorySink) Publish(message string, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pending = append(s.pending, Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
}

// Active returns notifications that have not yet expired, oldest first.
// Expired entries are pruned as a side effect.
func (s *MemorySink) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.pending[:0]
	for _, n := range s.pending {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	s.pending = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// NopSink discards all notifications. Useful in tests that do not
// assert on messages.
type NopSink struct{}

func (NopSink) Publish(string, Severity) {}
