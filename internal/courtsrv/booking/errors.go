package booking

import (
	"net/http"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/apperrors"
)

// Base booking error
var (
	ErrBookingError apperrors.Error = apperrors.New("booking request failed").SetStatusCode(http.StatusInternalServerError)
)

// Conflict errors
var (
	ErrCourtOccupied     apperrors.Error = ErrBookingError.New("court is already occupied").SetStatusCode(http.StatusBadRequest)
	ErrCourtNotOccupied  apperrors.Error = ErrBookingError.New("court is not occupied").SetStatusCode(http.StatusBadRequest)
	ErrUserAlreadyActive apperrors.Error = ErrBookingError.New("user already has an active session").SetStatusCode(http.StatusConflict)
)
