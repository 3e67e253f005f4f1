package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/notify"
)

var newline = []byte("\n")

// getEvents streams court events to the client as newline-delimited JSON.
// The first line is always a court_update snapshot of the full catalog;
// every subsequent line is an event produced after the client attached.
// The stream runs until the client disconnects.
func (s *CourtServer) getEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Ctx(ctx).Error().Msg("response writer does not support flushing")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Attach before taking the snapshot so no event falls in the gap
	// between the two. Events produced while the snapshot is being
	// written wait in the observer's buffer.
	events, detach := s.broadcaster.Attach()
	defer detach()

	snapshot, err := s.broadcaster.Marshal(notify.SnapshotEvent(s.manager.Snapshot()))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to marshal court snapshot")
		http.Error(w, "unable to marshal snapshot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(snapshot)
	w.Write(newline)
	flusher.Flush()

	log.Ctx(ctx).Info().Msg("observer attached")

	for {
		select {
		case <-ctx.Done():
			log.Ctx(ctx).Info().Msg("observer disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, ok := event.Data.([]byte)
			if !ok {
				continue
			}
			w.Write(data)
			w.Write(newline)
			flusher.Flush()
		}
	}
}
