package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/booking"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/catalog"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/config"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/notify"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/userstore"
)

func newTestServer(t *testing.T, duration, lead time.Duration) *CourtServer {
	t.Helper()
	config.SetTestMode(true)
	config.LoadDefaultConfig()

	registry := catalog.NewRegistry(catalog.DefaultCourts())
	broadcaster := notify.NewBroadcaster(64)
	t.Cleanup(broadcaster.Shutdown)
	sched := booking.NewScheduler(lead)
	manager := booking.NewManager(registry, sched, broadcaster, duration)

	s, err := CreateNewServer(manager, broadcaster, userstore.NewStore())
	require.NoError(t, err)
	s.MountHandlers()
	return s
}

// executeTestRequest runs a request through the router and returns the
// recorded response. userID may be empty for anonymous requests.
func executeTestRequest(t *testing.T, s *CourtServer, method, path string, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
		req.Header.Set(userEmailHeader, userID+"@example.com")
	}

	response := httptest.NewRecorder()
	s.Router.ServeHTTP(response, req)
	return response
}

func decodeBody(t *testing.T, response *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), out))
}
