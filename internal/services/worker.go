package services

import (
	"context"
	"sync"
	"time"

	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// SessionSweeper drops sessions that have been idle longer than the TTL, so
// abandoned page state does not outlive its browser.
type SessionSweeper interface {
	Start(ctx context.Context)
	Stop()
	SweepOnce() int
}

type sessionSweeper struct {
	sessions repositories.SessionRepository
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

const defaultSweepInterval = time.Minute

func NewSessionSweeper(
	sessions repositories.SessionRepository,
	ttl time.Duration,
	interval time.Duration,
	now func() time.Time,
) SessionSweeper {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &sessionSweeper{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		now:      now,
		stopChan: make(chan struct{}),
	}
}

// Start implements SessionSweeper.
func (s *sessionSweeper) Start(ctx context.Context) {
	golog.Infof("🧹 Starting session sweeper (ttl %s, every %s)", s.ttl, s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop implements SessionSweeper.
func (s *sessionSweeper) Stop() {
	s.stopOnce.Do(func() {
		golog.Info("🛑 Stopping session sweeper...")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// SweepOnce implements SessionSweeper.
func (s *sessionSweeper) SweepOnce() int {
	removed := s.sessions.DeleteIdleSince(s.now().Add(-s.ttl))
	if removed > 0 {
		golog.Infof("🧹 Expired %d idle sessions, %d remaining", removed, s.sessions.Count())
	}
	return removed
}

func (s *sessionSweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			golog.Info("🧹 Session sweeper stopped")
			return
		case <-ctx.Done():
			golog.Info("🧹 Session sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}
