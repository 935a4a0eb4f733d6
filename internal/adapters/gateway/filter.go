package gateway

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// OpenEndpoints lists the routes that do not require authentication. A
// request whose path contains any of these is forwarded without a validation
// call.
var OpenEndpoints = []string{
	"/auth/register",
	"/auth/login",
}

// AuthFilter gates secured routes behind a synchronous token validation call
// to the auth service. It holds no identity state of its own and never
// caches validation results: a token can expire or be revoked between
// requests, so every secured request triggers exactly one validation call.
type AuthFilter struct {
	validateURL string
	client      *http.Client
	open        []string
	log         *slog.Logger
}

func NewAuthFilter(authServiceURL string, log *slog.Logger) *AuthFilter {
	return &AuthFilter{
		validateURL: authServiceURL + "/auth/validate",
		client:      &http.Client{Timeout: 5 * time.Second},
		open:        OpenEndpoints,
		log:         log,
	}
}

func (f *AuthFilter) isSecured(path string) bool {
	for _, endpoint := range f.open {
		if strings.Contains(path, endpoint) {
			return false
		}
	}
	return true
}

// Middleware rejects secured requests lacking a valid bearer token. A
// missing or malformed Authorization header is rejected locally without a
// remote call.
func (f *AuthFilter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.isSecured(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			f.log.Warn("missing or invalid authorization header", "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := f.validate(r.Context(), token)
		if err != nil {
			f.log.Warn("token validation failed", "path", r.URL.Path, "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if userID != "" {
			r.Header.Set("X-User-Id", userID)
		}
		next.ServeHTTP(w, r)
	})
}

func (f *AuthFilter) validate(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.validateURL, bytes.NewBufferString(token))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", errUnauthorized
	}
	return resp.Header.Get("X-User-Id"), nil
}
