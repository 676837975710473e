// Package session keeps one upload workflow and one handoff slot per browser
// session.
package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"alfredoptarigan/resume-analyzer/internal/handoff"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/upload"
)

type Session struct {
	ID      string
	Upload  *upload.Controller
	Handoff handoff.Store

	navigate atomic.Bool
	lastSeen time.Time
}

// TakeNavigation reports, once, that a submission finished and the browser
// should move to the report view.
func (s *Session) TakeNavigation() bool {
	return s.navigate.Swap(false)
}

// Mount starts a fresh upload view visit.
func (s *Session) Mount() {
	s.navigate.Store(false)
	s.Upload.Reset()
}

type Manager struct {
	analyzer services.AnalyzerClient
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewManager(analyzer services.AnalyzerClient, ttl time.Duration) *Manager {
	return &Manager{
		analyzer: analyzer,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
		stopChan: make(chan struct{}),
	}
}

// Get returns the session for id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = &Session{ID: id, Handoff: handoff.NewMemoryStore()}
		s.Upload = upload.NewController(m.analyzer, s.Handoff, upload.WithHooks(upload.Hooks{
			NavigateToReport: func() { s.navigate.Store(true) },
		}))
		m.sessions[id] = s
	}
	s.lastSeen = m.now()
	return s
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	cutoff := m.now().Add(-m.ttl)
	var expired []*Session
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Upload.Reset()
	}
	return len(expired)
}

// Start sweeps expired sessions every period until Stop is called.
func (m *Manager) Start(ctx context.Context, period time.Duration) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		log.Println("🔄 Starting session sweeper")

		for {
			select {
			case <-m.stopChan:
				log.Println("🔄 Session sweeper stopped")
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					log.Printf("🧹 Dropped %d idle sessions\n", n)
				}
			}
		}
	}()
}

func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
	m.wg.Wait()
}
