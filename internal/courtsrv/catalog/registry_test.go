package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/uuid"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(DefaultCourts())

	courts := r.List()
	require.Len(t, courts, 13)
	for _, c := range courts {
		assert.Equal(t, courtcommon.CourtAvailable, c.Status)
		assert.Nil(t, c.CurrentSession)
	}

	// list order is catalog order and stable across calls
	assert.Equal(t, "bad-1", courts[0].ID)
	assert.Equal(t, "ten-1", courts[12].ID)
	again := r.List()
	for i := range courts {
		assert.Equal(t, courts[i].ID, again[i].ID)
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry(DefaultCourts())

	court, err := r.Get("car-3")
	require.Nil(t, err)
	assert.Equal(t, "Carrom Board 3", court.Name)
	assert.Equal(t, courtcommon.SportCarrom, court.Sport)
	assert.Equal(t, 3, court.CourtNumber)

	_, err = r.Get("no-such-court")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestSetOccupancy(t *testing.T) {
	r := NewRegistry(DefaultCourts())

	now := time.Now()
	sess := &courtcommon.Session{
		ID:        uuid.New(),
		CourtID:   "bad-1",
		UserID:    "u1",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	}

	court, err := r.SetOccupancy("bad-1", courtcommon.CourtOccupied, sess)
	require.Nil(t, err)
	assert.Equal(t, courtcommon.CourtOccupied, court.Status)
	assert.Same(t, sess, court.CurrentSession)

	// mutation is visible to subsequent reads
	got, err := r.Get("bad-1")
	require.Nil(t, err)
	assert.Equal(t, courtcommon.CourtOccupied, got.Status)

	court, err = r.SetOccupancy("bad-1", courtcommon.CourtAvailable, nil)
	require.Nil(t, err)
	assert.Equal(t, courtcommon.CourtAvailable, court.Status)
	assert.Nil(t, court.CurrentSession)

	_, err = r.SetOccupancy("no-such-court", courtcommon.CourtOccupied, nil)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry(DefaultCourts())

	snap := r.Snapshot()
	require.Len(t, snap, 13)

	// snapshot is detached from later mutations
	_, err := r.SetOccupancy("bad-1", courtcommon.CourtOccupied, nil)
	require.Nil(t, err)
	assert.Equal(t, courtcommon.CourtAvailable, snap[0].Status)
}
