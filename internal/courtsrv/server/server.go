// Package server exposes the court reservation service over HTTP: the
// court catalog, check-in and check-out, the caller's active session, and
// a streaming event feed that mirrors every state change.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/httpx"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/logtrace"
	commonmiddleware "github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/middleware"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/booking"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/config"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/notify"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/userstore"
)

type CourtServer struct {
	Router      *chi.Mux
	manager     *booking.Manager
	broadcaster *notify.Broadcaster
	users       *userstore.Store
}

func CreateNewServer(manager *booking.Manager, broadcaster *notify.Broadcaster, users *userstore.Store) (*CourtServer, error) {
	if manager == nil || broadcaster == nil || users == nil {
		return nil, fmt.Errorf("server requires a manager, broadcaster and user store")
	}
	s := &CourtServer{
		Router:      chi.NewRouter(),
		manager:     manager,
		broadcaster: broadcaster,
		users:       users,
	}
	return s, nil
}

func (s *CourtServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", userIDHeader, userEmailHeader},
			MaxAge:         300,
		}))
	}
	s.Router.Use(s.UserIdentity)

	s.mountCourtHandlers(s.Router)
	if logtrace.IsTraceEnabled() {
		fmt.Println("Routes in court router")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			fmt.Printf("Logging err: %s\n", err.Error())
		}
	}
}

func (s *CourtServer) mountCourtHandlers(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(commonmiddleware.SetTimeout(30 * time.Second))
			for _, handler := range s.courtHandlers() {
				r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
			}
		})
		// the event stream runs until the client disconnects, so it is
		// mounted outside the timeout group
		r.Get("/events", s.getEvents)
	})
	r.Get("/version", s.getVersion)
	r.Get("/ready", s.getReadiness)
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *CourtServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "Court Reservation Server: " + courtcommon.ServerVersion,
		ApiVersion:    courtcommon.ApiVersion,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

func (s *CourtServer) getReadiness(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("Readiness check")
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
