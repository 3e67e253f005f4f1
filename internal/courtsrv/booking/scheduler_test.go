package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/uuid"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
)

type firingRecorder struct {
	mu       sync.Mutex
	expiries []uuid.UUID
	warnings []uuid.UUID
}

func (r *firingRecorder) expire(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expiries = append(r.expiries, id)
}

func (r *firingRecorder) warn(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, id)
}

func (r *firingRecorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.expiries), len(r.warnings)
}

func testSession(d time.Duration) *courtcommon.Session {
	now := time.Now()
	return &courtcommon.Session{
		ID:        uuid.New(),
		CourtID:   "bad-1",
		UserID:    "u1",
		StartTime: now,
		EndTime:   now.Add(d),
	}
}

func TestSchedulerFiresWarningBeforeExpiry(t *testing.T) {
	rec := &firingRecorder{}
	s := NewScheduler(40 * time.Millisecond)
	s.bind(rec.expire, rec.warn)

	sess := testSession(80 * time.Millisecond)
	s.Arm(sess)

	// warning fires at ~40ms, expiry at ~80ms
	time.Sleep(60 * time.Millisecond)
	expiries, warnings := rec.counts()
	assert.Equal(t, 0, expiries)
	assert.Equal(t, 1, warnings)

	time.Sleep(60 * time.Millisecond)
	expiries, warnings = rec.counts()
	assert.Equal(t, 1, expiries)
	assert.Equal(t, 1, warnings)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.expiries, 1)
	assert.Equal(t, sess.ID, rec.expiries[0])
	assert.Equal(t, sess.ID, rec.warnings[0])
}

func TestSchedulerCancelStopsBothTimers(t *testing.T) {
	rec := &firingRecorder{}
	s := NewScheduler(40 * time.Millisecond)
	s.bind(rec.expire, rec.warn)

	sess := testSession(80 * time.Millisecond)
	s.Arm(sess)

	expiry, warning := s.armed(sess.ID)
	assert.True(t, expiry)
	assert.True(t, warning)

	s.Cancel(sess.ID)

	expiry, warning = s.armed(sess.ID)
	assert.False(t, expiry)
	assert.False(t, warning)

	time.Sleep(120 * time.Millisecond)
	expiries, warnings := rec.counts()
	assert.Equal(t, 0, expiries)
	assert.Equal(t, 0, warnings)
}

func TestSchedulerCancelAfterWarning(t *testing.T) {
	rec := &firingRecorder{}
	s := NewScheduler(60 * time.Millisecond)
	s.bind(rec.expire, rec.warn)

	sess := testSession(200 * time.Millisecond)
	s.Arm(sess)

	// let the warning fire, then cancel before the expiry
	time.Sleep(100 * time.Millisecond)
	s.Cancel(sess.ID)

	time.Sleep(200 * time.Millisecond)
	expiries, warnings := rec.counts()
	assert.Equal(t, 0, expiries)
	assert.Equal(t, 1, warnings)
}

func TestSchedulerCancelIdempotent(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	s.bind(func(uuid.UUID) {}, func(uuid.UUID) {})

	sess := testSession(time.Hour)
	s.Arm(sess)
	s.Cancel(sess.ID)
	s.Cancel(sess.ID)
	s.Cancel(uuid.New())
}

func TestSchedulerIndependentSessions(t *testing.T) {
	rec := &firingRecorder{}
	s := NewScheduler(20 * time.Millisecond)
	s.bind(rec.expire, rec.warn)

	short := testSession(60 * time.Millisecond)
	long := testSession(time.Hour)
	s.Arm(short)
	s.Arm(long)

	s.Cancel(long.ID)

	time.Sleep(120 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.expiries, 1)
	assert.Equal(t, short.ID, rec.expiries[0])
	require.Len(t, rec.warnings, 1)
	assert.Equal(t, short.ID, rec.warnings[0])
}
