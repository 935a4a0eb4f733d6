package http

import (
	"errors"
	"net/http"

	"github.com/vncsmyrnk/curator/internal/core/domain"
)

// statusFromError maps domain errors to HTTP status codes. Register
// duplicates map to 400 to preserve the public auth contract; watchlist
// duplicates are 409.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrNotInWatchlist):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyInWatchlist):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDependencyFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFromError(err))
}
