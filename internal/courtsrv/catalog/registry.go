package catalog

import (
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/apperrors"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
)

// Registry holds the courts and their occupancy state. Courts are created
// once from the seed and never destroyed. The registry has no concurrency
// control of its own; callers serialize access.
type Registry struct {
	courts map[string]*courtcommon.Court
	order  []string // stable catalog order
}

// NewRegistry creates a registry from the given seed. Every court starts
// out available.
func NewRegistry(seed []CourtSeed) *Registry {
	r := &Registry{
		courts: make(map[string]*courtcommon.Court, len(seed)),
		order:  make([]string, 0, len(seed)),
	}
	for _, s := range seed {
		r.courts[s.ID] = &courtcommon.Court{
			ID:          s.ID,
			Sport:       s.Sport,
			Name:        s.Name,
			CourtNumber: s.CourtNumber,
			Status:      courtcommon.CourtAvailable,
		}
		r.order = append(r.order, s.ID)
	}
	return r
}

// List returns the live court records in catalog order.
func (r *Registry) List() []*courtcommon.Court {
	courts := make([]*courtcommon.Court, 0, len(r.order))
	for _, id := range r.order {
		courts = append(courts, r.courts[id])
	}
	return courts
}

// Snapshot returns value copies of all courts in catalog order. Use this
// for responses and broadcast payloads so readers never observe a later
// mutation.
func (r *Registry) Snapshot() []courtcommon.Court {
	courts := make([]courtcommon.Court, 0, len(r.order))
	for _, id := range r.order {
		courts = append(courts, *r.courts[id])
	}
	return courts
}

// Get returns the live court record for the given id.
func (r *Registry) Get(id string) (*courtcommon.Court, apperrors.Error) {
	court, ok := r.courts[id]
	if !ok {
		return nil, ErrCourtNotFound
	}
	return court, nil
}

// SetOccupancy mutates the court's occupancy state and attached session
// reference in place. The mutation is visible to all subsequent reads.
func (r *Registry) SetOccupancy(id string, status courtcommon.CourtStatus, session *courtcommon.Session) (*courtcommon.Court, apperrors.Error) {
	court, ok := r.courts[id]
	if !ok {
		return nil, ErrCourtNotFound
	}
	court.Status = status
	court.CurrentSession = session
	return court, nil
}
