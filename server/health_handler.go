package server

import (
	"context"
	"net/http"
	"time"
)

// healthResponse reports overall and per-dependency status. The route
// answers 200 even when degraded; callers inspect the body.
type healthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// HealthHandler probes the document store, blob store and cache. Any failed
// probe degrades the status without failing the request.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deps := map[string]string{}
	status := "ok"

	probe := func(name string, ping func(context.Context) error) {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			status = "degraded"
			return
		}
		deps[name] = "ok"
	}

	probe("mongodb", h.store.Ping)
	probe("blob_store", h.blobs.Ping)
	if h.cache != nil {
		probe("redis", h.cache.Ping)
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: status, Dependencies: deps})
}
