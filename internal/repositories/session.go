package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/workflow"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one browser's page state. Each page owns exactly one of the
// workflow fields; nothing is shared between pages.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Upload   *workflow.UploadWorkflow
	Feedback *workflow.FeedbackWidget
	Login    *workflow.AuthForm
	Signup   *workflow.AuthForm

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// SessionFactory builds the page state for a new session.
type SessionFactory func() *Session

type SessionRepository interface {
	Create() *Session
	Transient() *Session
	FindByID(id string) (*Session, error)
	Delete(id uuid.UUID)
	DeleteIdleSince(cutoff time.Time) int
	Count() int
}

type sessionRepository struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*Session
	factory     SessionFactory
	maxSessions int
	now         func() time.Time
}

// NewSessionRepository keeps at most maxSessions sessions, evicting the
// least recently seen one when full. Zero or less means no cap.
func NewSessionRepository(factory SessionFactory, maxSessions int, now func() time.Time) SessionRepository {
	if now == nil {
		now = time.Now
	}
	return &sessionRepository{
		sessions:    make(map[uuid.UUID]*Session),
		factory:     factory,
		maxSessions: maxSessions,
		now:         now,
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create() *Session {
	sess := r.Transient()

	r.mu.Lock()
	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		r.evictOldestLocked()
	}
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	return sess
}

// Transient implements SessionRepository. The session is not stored.
func (r *sessionRepository) Transient() *Session {
	sess := r.factory()
	now := r.now()
	sess.ID = uuid.New()
	sess.CreatedAt = now
	sess.lastSeen = now
	return sess
}

func (r *sessionRepository) evictOldestLocked() {
	var (
		oldestID   uuid.UUID
		oldestSeen time.Time
		found      bool
	)
	for id, sess := range r.sessions {
		seen := sess.LastSeen()
		if !found || seen.Before(oldestSeen) {
			oldestID, oldestSeen, found = id, seen, true
		}
	}
	if found {
		delete(r.sessions, oldestID)
		golog.Warnf("⚠️ Session limit of %d reached, evicted session %s", r.maxSessions, oldestID)
	}
}

// FindByID implements SessionRepository. A hit counts as activity.
func (r *sessionRepository) FindByID(id string) (*Session, error) {
	sessID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", ErrSessionNotFound)
	}

	r.mu.RLock()
	sess, ok := r.sessions[sessID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.touch(r.now())
	return sess, nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// DeleteIdleSince implements SessionRepository.
func (r *sessionRepository) DeleteIdleSince(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sess := range r.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
