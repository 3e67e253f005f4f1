package catalog

import (
	"net/http"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/apperrors"
)

// Base registry error
var (
	ErrRegistryError apperrors.Error = apperrors.New("court registry error").SetStatusCode(http.StatusInternalServerError)
)

var (
	ErrCourtNotFound apperrors.Error = ErrRegistryError.New("court not found").SetStatusCode(http.StatusNotFound)
)
