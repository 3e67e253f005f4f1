package notify

import (
	stdjson "encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/uuid"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/eventbus"
)

func recvEvent(t *testing.T, ch <-chan eventbus.Event) Event {
	t.Helper()
	select {
	case busEvent := <-ch:
		data, ok := busEvent.Data.([]byte)
		require.True(t, ok, "event data should be marshaled bytes")
		var ev Event
		require.NoError(t, stdjson.Unmarshal(data, &ev))
		return ev
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

func TestBroadcast(t *testing.T) {
	b := NewBroadcaster(10)
	defer b.Shutdown()

	ch, detach := b.Attach()
	defer detach()

	now := time.Now().Truncate(time.Millisecond).UTC()
	sess := &courtcommon.Session{
		ID:        uuid.New(),
		CourtID:   "bad-1",
		UserID:    "u1",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	}
	court := &courtcommon.Court{
		ID:             "bad-1",
		Sport:          courtcommon.SportBadminton,
		Name:           "Badminton Court 1",
		CourtNumber:    1,
		Status:         courtcommon.CourtOccupied,
		CurrentSession: sess,
	}

	b.Broadcast(Event{
		Type:    EventCheckIn,
		CourtID: "bad-1",
		Court:   court,
		Session: sess,
	})

	ev := recvEvent(t, ch)
	assert.Equal(t, EventCheckIn, ev.Type)
	assert.Equal(t, "bad-1", ev.CourtID)
	require.NotNil(t, ev.Court)
	assert.Equal(t, courtcommon.CourtOccupied, ev.Court.Status)
	require.NotNil(t, ev.Session)
	assert.Equal(t, sess.ID, ev.Session.ID)
	assert.Equal(t, "u1", ev.Session.UserID)
	assert.Equal(t, now, ev.Session.StartTime)
	assert.Equal(t, now.Add(time.Hour), ev.Session.EndTime)
}

func TestBroadcastAllTypesReachObserver(t *testing.T) {
	b := NewBroadcaster(10)
	defer b.Shutdown()

	ch, detach := b.Attach()
	defer detach()

	types := []EventType{EventCheckIn, EventCheckOut, EventSessionWarning, EventSessionExpired, EventCourtUpdate}
	for _, typ := range types {
		b.Broadcast(Event{Type: typ, Message: "msg"})
	}

	// events arrive in production order
	for _, typ := range types {
		ev := recvEvent(t, ch)
		assert.Equal(t, typ, ev.Type)
	}
}

func TestDetachedObserverDoesNotBlockOthers(t *testing.T) {
	b := NewBroadcaster(1)
	defer b.Shutdown()

	_, detach := b.Attach()
	detach()

	ch, detach2 := b.Attach()
	defer detach2()

	b.Broadcast(Event{Type: EventCheckOut, CourtID: "vol-1"})

	ev := recvEvent(t, ch)
	assert.Equal(t, EventCheckOut, ev.Type)
	assert.Equal(t, "vol-1", ev.CourtID)
}

func TestSnapshotEvent(t *testing.T) {
	courts := []courtcommon.Court{
		{ID: "bad-1", Status: courtcommon.CourtAvailable},
		{ID: "bad-2", Status: courtcommon.CourtOccupied},
	}
	ev := SnapshotEvent(courts)
	assert.Equal(t, EventCourtUpdate, ev.Type)
	assert.Len(t, ev.Courts, 2)

	b := NewBroadcaster(1)
	defer b.Shutdown()
	data, err := b.Marshal(ev)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, stdjson.Unmarshal(data, &decoded))
	assert.Equal(t, EventCourtUpdate, decoded.Type)
	require.Len(t, decoded.Courts, 2)
	assert.Equal(t, "bad-1", decoded.Courts[0].ID)
}
