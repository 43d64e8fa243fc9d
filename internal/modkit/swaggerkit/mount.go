// Package swaggerkit serves the OpenAPI document and Swagger UI of the app server
package swaggerkit

import (
	"net/http"

	phttp "ghappkit/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives; the document is served at DocsPath/doc.json
const DocsPath = "/docs"

// Mount the Swagger UI and JSON document if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("ghapp"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
