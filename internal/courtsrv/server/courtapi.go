package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/httpx"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/courtcommon"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/userstore"
)

var reqValidator = validator.New(validator.WithRequiredStructEnabled())

// handlerParam binds a method and path to a request handler.
type handlerParam struct {
	Method  string
	Path    string
	Handler httpx.RequestHandler
}

func (s *CourtServer) courtHandlers() []handlerParam {
	return []handlerParam{
		{
			Method:  http.MethodGet,
			Path:    "/courts",
			Handler: s.listCourts,
		},
		{
			Method:  http.MethodPost,
			Path:    "/check-in",
			Handler: s.checkIn,
		},
		{
			Method:  http.MethodPost,
			Path:    "/check-out",
			Handler: s.checkOut,
		},
		{
			Method:  http.MethodGet,
			Path:    "/sessions/me",
			Handler: s.getMySession,
		},
		{
			Method:  http.MethodGet,
			Path:    "/users",
			Handler: s.listUsers,
		},
	}
}

func (s *CourtServer) listCourts(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   s.manager.Snapshot(),
	}, nil
}

type checkInReq struct {
	CourtID string `json:"courtId" validate:"required"`
}

type checkInRsp struct {
	Court   courtcommon.Court    `json:"court"`
	Session *courtcommon.Session `json:"session"`
}

func (s *CourtServer) checkIn(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	userContext, err := requireUser(r)
	if err != nil {
		return nil, err
	}

	req := &checkInReq{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := reqValidator.Struct(req); err != nil {
		return nil, httpx.ErrInvalidRequest("courtId is required")
	}

	court, session, apperr := s.manager.Reserve(ctx, req.CourtID, userContext.UserID)
	if apperr != nil {
		log.Ctx(ctx).Info().Err(apperr).Str("court_id", req.CourtID).Msg("check-in rejected")
		return nil, apperr
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &checkInRsp{
			Court:   court,
			Session: session,
		},
	}, nil
}

type checkOutReq struct {
	CourtID string `json:"courtId" validate:"required"`
}

type checkOutRsp struct {
	Court courtcommon.Court `json:"court"`
}

func (s *CourtServer) checkOut(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	if _, err := requireUser(r); err != nil {
		return nil, err
	}

	req := &checkOutReq{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := reqValidator.Struct(req); err != nil {
		return nil, httpx.ErrInvalidRequest("courtId is required")
	}

	court, apperr := s.manager.Release(ctx, req.CourtID)
	if apperr != nil {
		log.Ctx(ctx).Info().Err(apperr).Str("court_id", req.CourtID).Msg("check-out rejected")
		return nil, apperr
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &checkOutRsp{
			Court: court,
		},
	}, nil
}

type mySessionRsp struct {
	Session *courtcommon.Session `json:"session"`
}

func (s *CourtServer) getMySession(r *http.Request) (*httpx.Response, error) {
	userContext, err := requireUser(r)
	if err != nil {
		return nil, err
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &mySessionRsp{
			Session: s.manager.ActiveSessionForUser(userContext.UserID),
		},
	}, nil
}

type listUsersRsp struct {
	Users []userstore.User `json:"users"`
}

func (s *CourtServer) listUsers(r *http.Request) (*httpx.Response, error) {
	if _, err := requireUser(r); err != nil {
		return nil, err
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &listUsersRsp{
			Users: s.users.List(),
		},
	}, nil
}
