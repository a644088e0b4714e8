package main

import (
	"context"
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes builds the handler chain. Background work started for it, such as
// the rate limiter's sweeper, stops when ctx is done.
func (app *application) routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	// Near-miss paths like /health/ or /HEALTH are unmapped, not redirected.
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	routes := map[string]http.Handler{
		"/":            http.HandlerFunc(app.homeHandler),
		"/health":      http.HandlerFunc(app.healthcheckHandler),
		"/info":        http.HandlerFunc(app.infoHandler),
		"/api/version": http.HandlerFunc(app.versionHandler),
		"/metrics":     app.metrics.Handler(),
		"/debug/vars":  expvar.Handler(),
	}
	for path, handler := range routes {
		router.Handler(http.MethodGet, path, handler)
		router.Handler(http.MethodHead, path, handler)
	}

	return app.metricsMiddleware(app.recoverPanic(app.enableCORS(app.rateLimit(ctx, router))))
}
