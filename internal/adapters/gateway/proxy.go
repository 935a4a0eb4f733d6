package gateway

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

var errUnauthorized = errors.New("token rejected by auth service")

// Route maps a path prefix to an upstream service.
type Route struct {
	Prefix   string
	Upstream string
}

// NewProxy builds the gateway handler: longest-prefix route matching in
// front of per-upstream reverse proxies, with the auth filter applied to the
// whole tree.
func NewProxy(routes []Route, filter *AuthFilter, log *slog.Logger) (http.Handler, error) {
	mux := http.NewServeMux()

	for _, route := range routes {
		target, err := url.Parse(route.Upstream)
		if err != nil {
			return nil, fmt.Errorf("invalid upstream for %s: %w", route.Prefix, err)
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error("upstream request failed", "path", r.URL.Path, "upstream", target.Host, "error", err)
			w.WriteHeader(http.StatusBadGateway)
		}

		prefix := strings.TrimSuffix(route.Prefix, "/")
		mux.Handle(prefix+"/", proxy)
	}

	return filter.Middleware(mux), nil
}
