package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"PortfolioFM/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "gate disabled when no key configured",
			configured: "",
			header:     "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			configured: "secret",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Missing API key",
		},
		{
			name:       "wrong key rejected",
			configured: "secret",
			header:     "not-the-secret",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Invalid API key",
		},
		{
			name:       "matching key passes",
			configured: "secret",
			header:     "secret",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &APIHandler{cfg: &config.Config{APIKey: tt.configured}}

			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			if tt.header != "" {
				req.Header.Set(apiKeyHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			h.APIKeyMiddleware(okHandler)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				assert.Contains(t, rec.Body.String(), tt.wantDetail)
			}
		})
	}
}

func TestDocsAuthMiddleware(t *testing.T) {
	h := &APIHandler{cfg: &config.Config{DocsUsername: "admin", DocsPassword: "letmein"}}

	t.Run("missing credentials challenged", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		rec := httptest.NewRecorder()

		h.DocsAuthMiddleware(okHandler)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, `Basic realm="docs"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		req.SetBasicAuth("admin", "wrong")
		rec := httptest.NewRecorder()

		h.DocsAuthMiddleware(okHandler)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong username rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		req.SetBasicAuth("root", "letmein")
		rec := httptest.NewRecorder()

		h.DocsAuthMiddleware(okHandler)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid credentials pass", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		req.SetBasicAuth("admin", "letmein")
		rec := httptest.NewRecorder()

		h.DocsAuthMiddleware(okHandler)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("gate disabled without a configured password", func(t *testing.T) {
		open := &APIHandler{cfg: &config.Config{DocsUsername: "admin"}}
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		rec := httptest.NewRecorder()

		open.DocsAuthMiddleware(okHandler)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDocsAuthMiddlewareBcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	h := &APIHandler{cfg: &config.Config{DocsUsername: "admin", DocsPassword: string(hash)}}

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.SetBasicAuth("admin", "letmein")
	rec := httptest.NewRecorder()
	h.DocsAuthMiddleware(okHandler)(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	h.DocsAuthMiddleware(okHandler)(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("allowed origin echoed", func(t *testing.T) {
		mw := corsMiddleware([]string{"http://localhost:3000"})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		mw(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		mw := corsMiddleware([]string{"http://localhost:3000"})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		mw(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows everyone", func(t *testing.T) {
		mw := corsMiddleware([]string{"*"})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		rec := httptest.NewRecorder()

		mw(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answered without calling next", func(t *testing.T) {
		called := false
		mw := corsMiddleware([]string{"*"})
		req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
		rec := httptest.NewRecorder()

		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
	})
}
