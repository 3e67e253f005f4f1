// Package booking implements the session lifecycle for court reservations:
// one active session per court, one active session per user, automatic
// expiry after a fixed duration, and a warning a fixed lead time before
// expiry. All state mutations, whether user requests or timer firings,
// are serialized under a single mutex, and every mutation is pushed
// through the event broadcaster.
package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/apperrors"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/uuid"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/catalog"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/notify"
)

// Manager owns the authoritative session set and is the only mutator of
// court occupancy. Construct one per process.
type Manager struct {
	mu          sync.Mutex
	registry    *catalog.Registry
	sched       *Scheduler
	broadcaster *notify.Broadcaster
	duration    time.Duration

	sessions map[uuid.UUID]*courtcommon.Session
	byCourt  map[string]*courtcommon.Session
	byUser   map[string]*courtcommon.Session
}

// NewManager creates a manager with the given collaborators and fixed
// session duration, and binds the scheduler's timer callbacks to it.
func NewManager(registry *catalog.Registry, sched *Scheduler, broadcaster *notify.Broadcaster, duration time.Duration) *Manager {
	m := &Manager{
		registry:    registry,
		sched:       sched,
		broadcaster: broadcaster,
		duration:    duration,
		sessions:    make(map[uuid.UUID]*courtcommon.Session),
		byCourt:     make(map[string]*courtcommon.Session),
		byUser:      make(map[string]*courtcommon.Session),
	}
	sched.bind(m.handleExpiry, m.handleWarning)
	return m
}

// Reserve creates a session for the user on the given court. Fails when
// the court is unknown, already occupied, or the user already holds a
// session elsewhere. On success the court is flipped to occupied, both
// timers are armed, and a check_in event is broadcast.
func (m *Manager) Reserve(ctx context.Context, courtID string, userID string) (courtcommon.Court, *courtcommon.Session, apperrors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	court, err := m.registry.Get(courtID)
	if err != nil {
		return courtcommon.Court{}, nil, err
	}
	if court.Status == courtcommon.CourtOccupied {
		return courtcommon.Court{}, nil, ErrCourtOccupied
	}
	if existing, ok := m.byUser[userID]; ok {
		heldName := existing.CourtID
		if heldCourt, herr := m.registry.Get(existing.CourtID); herr == nil {
			heldName = heldCourt.Name
		}
		return courtcommon.Court{}, nil, ErrUserAlreadyActive.Msg(
			fmt.Sprintf("you already have an active session on %s (%s)", heldName, existing.CourtID))
	}

	now := time.Now()
	session := &courtcommon.Session{
		ID:        uuid.New(),
		CourtID:   courtID,
		UserID:    userID,
		StartTime: now,
		EndTime:   now.Add(m.duration),
	}
	m.sessions[session.ID] = session
	m.byCourt[courtID] = session
	m.byUser[userID] = session
	m.registry.SetOccupancy(courtID, courtcommon.CourtOccupied, session)

	m.sched.Arm(session)

	courtCopy := *court
	m.broadcaster.Broadcast(notify.Event{
		Type:    notify.EventCheckIn,
		CourtID: courtID,
		Court:   &courtCopy,
		Courts:  m.registry.Snapshot(),
		Session: session,
	})

	log.Ctx(ctx).Info().
		Str("court_id", courtID).
		Str("user_id", userID).
		Str("session_id", session.ID.String()).
		Time("end_time", session.EndTime).
		Msg("session created")

	return courtCopy, session, nil
}

// Release ends the active session on the given court. Fails when the
// court is unknown or not occupied. On success the court is flipped to
// available, the session's timers are cancelled, and a check_out event is
// broadcast.
func (m *Manager) Release(ctx context.Context, courtID string) (courtcommon.Court, apperrors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	court, err := m.registry.Get(courtID)
	if err != nil {
		return courtcommon.Court{}, err
	}
	session, ok := m.byCourt[courtID]
	if court.Status != courtcommon.CourtOccupied || !ok {
		return courtcommon.Court{}, ErrCourtNotOccupied
	}

	m.removeSession(session)
	m.sched.Cancel(session.ID)

	courtCopy := *court
	m.broadcaster.Broadcast(notify.Event{
		Type:    notify.EventCheckOut,
		CourtID: courtID,
		Court:   &courtCopy,
		Courts:  m.registry.Snapshot(),
	})

	log.Ctx(ctx).Info().
		Str("court_id", courtID).
		Str("session_id", session.ID.String()).
		Msg("session released")

	return courtCopy, nil
}

// ActiveSessionForUser returns the user's live session, or nil.
func (m *Manager) ActiveSessionForUser(userID string) *courtcommon.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byUser[userID]
}

// ActiveSessionForCourt returns the court's live session, or nil.
func (m *Manager) ActiveSessionForCourt(courtID string) *courtcommon.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byCourt[courtID]
}

// Snapshot returns a consistent value copy of all courts in catalog order.
func (m *Manager) Snapshot() []courtcommon.Court {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Snapshot()
}

// handleExpiry is invoked by the scheduler when a session's expiry timer
// fires. It re-validates that the session is still the court's current
// session before acting: a session that was released, or a court that was
// released and re-reserved, between timer arming and firing is left
// untouched.
func (m *Manager) handleExpiry(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, court := m.validateLocked(sessionID)
	if session == nil {
		return
	}

	m.removeSession(session)
	m.sched.Cancel(sessionID)

	courtCopy := *court
	m.broadcaster.Broadcast(notify.Event{
		Type:    notify.EventSessionExpired,
		CourtID: session.CourtID,
		Court:   &courtCopy,
		Courts:  m.registry.Snapshot(),
		Message: fmt.Sprintf("%s session has expired and is now available", court.Name),
	})

	log.Info().
		Str("court_id", session.CourtID).
		Str("session_id", sessionID.String()).
		Msg("session expired")
}

// handleWarning is invoked by the scheduler when a session's warning timer
// fires. If the session is still active it broadcasts a warning event;
// no state is mutated either way.
func (m *Manager) handleWarning(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, court := m.validateLocked(sessionID)
	if session == nil {
		return
	}

	m.broadcaster.Broadcast(notify.Event{
		Type:    notify.EventSessionWarning,
		CourtID: session.CourtID,
		Courts:  m.registry.Snapshot(),
		Message: fmt.Sprintf("%s - Only %s remaining!", court.Name, formatLead(m.sched.warningLead)),
	})

	log.Info().
		Str("court_id", session.CourtID).
		Str("session_id", sessionID.String()).
		Msg("session warning sent")
}

// validateLocked checks that the session is live and is still the current
// session of an occupied court. Returns nils when there is nothing to do.
// Caller must hold m.mu.
func (m *Manager) validateLocked(sessionID uuid.UUID) (*courtcommon.Session, *courtcommon.Court) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	court, err := m.registry.Get(session.CourtID)
	if err != nil {
		return nil, nil
	}
	if court.Status != courtcommon.CourtOccupied ||
		court.CurrentSession == nil || court.CurrentSession.ID != sessionID {
		return nil, nil
	}
	return session, court
}

// removeSession drops the session from the active set and flips its court
// back to available. Caller must hold m.mu.
func (m *Manager) removeSession(session *courtcommon.Session) {
	delete(m.sessions, session.ID)
	delete(m.byCourt, session.CourtID)
	delete(m.byUser, session.UserID)
	m.registry.SetOccupancy(session.CourtID, courtcommon.CourtAvailable, nil)
}

// formatLead renders the warning lead time for the warning message.
func formatLead(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	return d.String()
}
