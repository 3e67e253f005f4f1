// Package userstore keeps the identity records of users seen by the
// service. Identity arrives on each request as headers; the store records
// who has been seen and when, so session records can be tied back to a
// user.
package userstore

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/apperrors"
)

var (
	ErrUserStoreError apperrors.Error = apperrors.New("user store request failed").SetStatusCode(http.StatusInternalServerError)
	ErrUserNotFound   apperrors.Error = ErrUserStoreError.New("user not found").SetStatusCode(http.StatusNotFound)
)

// User is an identity record.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Store is an in-memory user registry. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*User),
	}
}

// Upsert records that the user was seen now, creating the record on first
// sight and refreshing email and last-seen time on subsequent sights.
// Returns a copy of the stored record.
func (s *Store) Upsert(id string, email string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	u, ok := s.users[id]
	if !ok {
		u = &User{
			ID:        id,
			FirstSeen: now,
		}
		s.users[id] = u
	}
	if email != "" {
		u.Email = email
	}
	u.LastSeen = now
	return *u
}

// Get returns a copy of the user's record.
func (s *Store) Get(id string) (User, apperrors.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return *u, nil
}

// List returns copies of all records ordered by user id.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
