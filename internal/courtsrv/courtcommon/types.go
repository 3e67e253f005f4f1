// Package courtcommon provides the shared domain types and context
// utilities for the court occupancy service. It is a leaf package imported
// by the registry, booking, and notification layers.
package courtcommon

import (
	"encoding/json"
	"time"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/uuid"
)

// Sport identifies the sport a court belongs to.
type Sport string

const (
	SportBadminton  Sport = "badminton"
	SportVolleyball Sport = "volleyball"
	SportCarrom     Sport = "carrom"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
	SportTennis     Sport = "tennis"
)

// CourtStatus is the occupancy state of a court.
type CourtStatus string

const (
	CourtAvailable CourtStatus = "available"
	CourtOccupied  CourtStatus = "occupied"
)

// Court is a bookable physical court or board. Identity and catalog
// attributes are fixed at process start; Status and CurrentSession are
// mutated only by the session manager.
type Court struct {
	ID             string      `json:"id"`
	Sport          Sport       `json:"sport"`
	Name           string      `json:"name"`
	CourtNumber    int         `json:"courtNumber"`
	Status         CourtStatus `json:"status"`
	CurrentSession *Session    `json:"currentSession,omitempty"`
}

// Session is an active reservation of one court by one user for a fixed
// duration. A session record is immutable once created; it is removed from
// the active set on release or expiry. EndTime is always exactly the
// configured session duration after StartTime.
type Session struct {
	ID        uuid.UUID
	CourtID   string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
}

// TimeRemaining returns the time left until the session expires, clamped
// to zero. It is derived, never stored.
func (s *Session) TimeRemaining() time.Duration {
	remaining := time.Until(s.EndTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// sessionWire is the JSON representation of a session. Timestamps are Unix
// milliseconds on the wire.
type sessionWire struct {
	ID        string `json:"id"`
	CourtID   string `json:"courtId"`
	UserID    string `json:"userId"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}

// MarshalJSON implements json.Marshaler.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionWire{
		ID:        s.ID.String(),
		CourtID:   s.CourtID,
		UserID:    s.UserID,
		StartTime: s.StartTime.UnixMilli(),
		EndTime:   s.EndTime.UnixMilli(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Session) UnmarshalJSON(b []byte) error {
	var w sessionWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	s.ID = id
	s.CourtID = w.CourtID
	s.UserID = w.UserID
	s.StartTime = time.UnixMilli(w.StartTime).UTC()
	s.EndTime = time.UnixMilli(w.EndTime).UTC()
	return nil
}
