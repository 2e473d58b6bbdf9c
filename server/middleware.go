package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"PortfolioFM/apperr"

	"golang.org/x/crypto/bcrypt"
)

// apiKeyHeader is the shared-secret header checked on data routes.
const apiKeyHeader = "X-API-Key"

// corsMiddleware sets CORS headers for the configured origins and answers
// preflight requests.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+apiKeyHeader)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// APIKeyMiddleware requires the shared-secret header on a route. An empty
// configured key disables the gate.
func (h *APIHandler) APIKeyMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.APIKey == "" {
			next(w, r)
			return
		}

		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			writeError(w, apperr.New(apperr.Unauthorized, "Missing API key"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.APIKey)) != 1 {
			writeError(w, apperr.New(apperr.Unauthorized, "Invalid API key"))
			return
		}

		next(w, r)
	}
}

// DocsAuthMiddleware protects the documentation routes with basic
// credentials, independent of the data-route gate. The configured password
// may be a bcrypt hash or a plain value.
func (h *APIHandler) DocsAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.DocsPassword == "" {
			next(w, r)
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="docs"`)
			writeError(w, apperr.New(apperr.Unauthorized, "Documentation credentials required"))
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.DocsUsername)) == 1
		if userOK && passwordMatches(password, h.cfg.DocsPassword) {
			next(w, r)
			return
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="docs"`)
		writeError(w, apperr.New(apperr.Unauthorized, "Invalid documentation credentials"))
	}
}

func passwordMatches(given, configured string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(configured)) == 1
}
