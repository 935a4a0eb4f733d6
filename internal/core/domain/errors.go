package domain

import "errors"

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrProfileExists      = errors.New("user profile already exists")
	ErrAlreadyInWatchlist = errors.New("item already exists in watchlist")
	ErrNotInWatchlist     = errors.New("item not found in watchlist")
	ErrDependencyFailed   = errors.New("downstream dependency unavailable")
	ErrInternal           = errors.New("internal server error")
)
