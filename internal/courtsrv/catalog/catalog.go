// Package catalog holds the fixed catalog of courts and each court's
// current occupancy state. The registry performs no locking of its own;
// the booking manager serializes all access to it.
package catalog

import (
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
)

// CourtSeed describes one catalog entry. Occupancy state is not part of
// the seed; every court starts out available.
type CourtSeed struct {
	ID          string
	Sport       courtcommon.Sport
	Name        string
	CourtNumber int
}

// DefaultCourts returns the built-in court catalog. The order of the slice
// is the stable catalog order used by List and Snapshot.
func DefaultCourts() []CourtSeed {
	return []CourtSeed{
		{ID: "bad-1", Sport: courtcommon.SportBadminton, Name: "Badminton Court 1", CourtNumber: 1},
		{ID: "bad-2", Sport: courtcommon.SportBadminton, Name: "Badminton Court 2", CourtNumber: 2},
		{ID: "vol-1", Sport: courtcommon.SportVolleyball, Name: "Volleyball Court 1", CourtNumber: 1},
		{ID: "vol-2", Sport: courtcommon.SportVolleyball, Name: "Volleyball Court 2", CourtNumber: 2},
		{ID: "car-1", Sport: courtcommon.SportCarrom, Name: "Carrom Board 1", CourtNumber: 1},
		{ID: "car-2", Sport: courtcommon.SportCarrom, Name: "Carrom Board 2", CourtNumber: 2},
		{ID: "car-3", Sport: courtcommon.SportCarrom, Name: "Carrom Board 3", CourtNumber: 3},
		{ID: "car-4", Sport: courtcommon.SportCarrom, Name: "Carrom Board 4", CourtNumber: 4},
		{ID: "car-5", Sport: courtcommon.SportCarrom, Name: "Carrom Board 5", CourtNumber: 5},
		{ID: "bas-1", Sport: courtcommon.SportBasketball, Name: "Basketball Court 1", CourtNumber: 1},
		{ID: "bas-2", Sport: courtcommon.SportBasketball, Name: "Basketball Court 2", CourtNumber: 2},
		{ID: "foo-1", Sport: courtcommon.SportFootball, Name: "Football Field", CourtNumber: 1},
		{ID: "ten-1", Sport: courtcommon.SportTennis, Name: "Tennis Court", CourtNumber: 1},
	}
}
