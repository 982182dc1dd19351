// Package spec embeds the OpenAPI specification for the milelog API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package spec

import (
	_ "embed"
	"net/http"
)

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary means the spec and the running code are always in sync.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Handler serves the embedded document.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(OpenAPI)
	}
}
