// Package notify implements the event broadcaster: it fans typed
// state-change events out to every connected observer through the event
// bus. Events carry either the single affected court or the full court
// list so an observer can reconstruct consistent state without a follow-up
// request.
package notify

import (
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
)

// EventType identifies the kind of state change an event describes.
type EventType string

const (
	// EventCourtUpdate carries a full snapshot of all courts. Sent to every
	// observer on connect.
	EventCourtUpdate EventType = "court_update"

	// EventCheckIn announces a new reservation.
	EventCheckIn EventType = "check_in"

	// EventCheckOut announces a user-initiated release.
	EventCheckOut EventType = "check_out"

	// EventSessionWarning announces that a session is close to expiry.
	// Never accompanied by a state change.
	EventSessionWarning EventType = "session_warning"

	// EventSessionExpired announces an automatic, timer-driven release.
	EventSessionExpired EventType = "session_expired"
)

// Event is the wire representation of a broadcast notification.
type Event struct {
	Type    EventType            `json:"type"`
	CourtID string               `json:"courtId,omitempty"`
	Court   *courtcommon.Court   `json:"court,omitempty"`
	Courts  []courtcommon.Court  `json:"courts,omitempty"`
	Session *courtcommon.Session `json:"session,omitempty"`
	Message string               `json:"message,omitempty"`
}

// SnapshotEvent builds a full-snapshot event from the given court list.
func SnapshotEvent(courts []courtcommon.Court) Event {
	return Event{
		Type:   EventCourtUpdate,
		Courts: courts,
	}
}
