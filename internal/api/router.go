package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harrylevesque/hellonames/internal/utils"
)

// RouterOptions tunes the middleware chain.
type RouterOptions struct {
	AllowedOrigins []string
	WriteRate      float64
	Logger         *slog.Logger
}

func NewRouter(h *Handlers, opts RouterOptions) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NopLogger()
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware, observeMiddleware(logger), corsMiddleware(opts.AllowedOrigins))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/", RootHandler).Methods("GET")

	limit := writeLimitMiddleware(opts.WriteRate)
	r.HandleFunc("/api/names", h.ListNamesHandler).Methods("GET")
	r.Handle("/api/names", limit(http.HandlerFunc(h.AddNameHandler))).Methods("POST")
	// Preflight is answered by corsMiddleware; the route only has to match.
	r.HandleFunc("/api/names", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("OPTIONS")

	return r
}
