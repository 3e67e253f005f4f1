package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/httpx"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
)

// Identity headers. Callers self-identify; there is no credential check.
const (
	userIDHeader    = "X-User-Id"
	userEmailHeader = "X-User-Email"
)

// UserIdentity reads the identity headers, records the user in the user
// store, and injects the user context into the request. Requests without
// an identity pass through; handlers that need one reject them.
func (s *CourtServer) UserIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}
		userEmail := r.Header.Get(userEmailHeader)
		s.users.Upsert(userID, userEmail)

		ctx := courtcommon.WithUserContext(r.Context(), &courtcommon.UserContext{
			UserID:    userID,
			UserEmail: userEmail,
		})
		logger := log.Ctx(ctx).With().Str("user_id", userID).Logger()
		ctx = logger.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser returns the caller's user context or an unauthorized error.
func requireUser(r *http.Request) (*courtcommon.UserContext, error) {
	userContext := courtcommon.GetUserContext(r.Context())
	if userContext == nil || userContext.UserID == "" {
		return nil, httpx.ErrUnAuthorized("missing user identity")
	}
	return userContext, nil
}
