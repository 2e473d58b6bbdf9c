package server

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var openapiSpec []byte

//go:embed docs.html
var docsPage []byte

// OpenAPIHandler serves the machine-readable API description.
func (h *APIHandler) OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(openapiSpec)
}

// DocsHandler serves the interactive documentation page.
func (h *APIHandler) DocsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(docsPage)
}
