package booking

import (
	"sync"
	"time"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/uuid"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
)

// Scheduler owns the expiry and warning timers for active sessions. Each
// armed session gets exactly one expiry timer, firing when the session
// duration elapses, and one warning timer, firing the configured lead time
// before expiry. The two are independent so an early release cancels both
// without extra bookkeeping, and a warning firing never causes a state
// transition.
//
// The scheduler holds only session ids, never session records; the manager
// owns the authoritative session set. Timer callbacks re-enter the manager,
// which re-validates state before acting.
type Scheduler struct {
	mu          sync.Mutex
	warningLead time.Duration

	onExpire  func(sessionID uuid.UUID)
	onWarning func(sessionID uuid.UUID)

	expiryTimers  map[uuid.UUID]*time.Timer
	warningTimers map[uuid.UUID]*time.Timer
}

// NewScheduler creates a scheduler with the given warning lead time.
// Callbacks are bound by the manager before any session is armed.
func NewScheduler(warningLead time.Duration) *Scheduler {
	return &Scheduler{
		warningLead:   warningLead,
		expiryTimers:  make(map[uuid.UUID]*time.Timer),
		warningTimers: make(map[uuid.UUID]*time.Timer),
	}
}

// bind registers the callbacks invoked when timers fire.
func (s *Scheduler) bind(onExpire, onWarning func(sessionID uuid.UUID)) {
	s.onExpire = onExpire
	s.onWarning = onWarning
}

// Arm schedules the expiry and warning timers for the session, keyed by
// session id.
func (s *Scheduler) Arm(session *courtcommon.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := session.ID
	s.expiryTimers[id] = time.AfterFunc(time.Until(session.EndTime), func() {
		s.expiryFired(id)
	})
	s.warningTimers[id] = time.AfterFunc(time.Until(session.EndTime.Add(-s.warningLead)), func() {
		s.warningFired(id)
	})
}

// Cancel stops both timers for the session if still pending. Safe to call
// multiple times or with an unknown id.
func (s *Scheduler) Cancel(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.expiryTimers[sessionID]; ok {
		t.Stop()
		delete(s.expiryTimers, sessionID)
	}
	if t, ok := s.warningTimers[sessionID]; ok {
		t.Stop()
		delete(s.warningTimers, sessionID)
	}
}

func (s *Scheduler) expiryFired(sessionID uuid.UUID) {
	s.mu.Lock()
	_, armed := s.expiryTimers[sessionID]
	delete(s.expiryTimers, sessionID)
	s.mu.Unlock()

	// A Cancel that ran between firing and this check wins.
	if !armed || s.onExpire == nil {
		return
	}
	s.onExpire(sessionID)
}

func (s *Scheduler) warningFired(sessionID uuid.UUID) {
	s.mu.Lock()
	_, armed := s.warningTimers[sessionID]
	delete(s.warningTimers, sessionID)
	s.mu.Unlock()

	if !armed || s.onWarning == nil {
		return
	}
	s.onWarning(sessionID)
}

// armed reports whether the expiry and warning timers for the session are
// still pending.
func (s *Scheduler) armed(sessionID uuid.UUID) (expiry bool, warning bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, expiry = s.expiryTimers[sessionID]
	_, warning = s.warningTimers[sessionID]
	return expiry, warning
}
