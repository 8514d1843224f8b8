// Package server exposes the search controller over HTTP.
//
// The JSON endpoints mirror what the dashboard does interactively: run a search, read the
// grouped views, drill into a venue, clear the backend, and read or dismiss toasts.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pfrederiksen/venue-slots/internal/controller"
	"github.com/pfrederiksen/venue-slots/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Config defines the dependencies of a Server
type Config struct {
	Addr       string
	Controller *controller.Controller
	// Status is optional; without it /api/stats only counts local slots
	Status controller.StatusSource
	Now    func() time.Time
}

// Server serves the controller state as JSON
type Server struct {
	addr   string
	ctrl   *controller.Controller
	status controller.StatusSource
	now    func() time.Time
	router chi.Router
}

// New builds a server and its routes
func New(cfg Config) *Server {
	s := &Server{
		addr:   cfg.Addr,
		ctrl:   cfg.Controller,
		status: cfg.Status,
		now:    cfg.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", s.healthHandler())
	router.Route("/api", s.register)

	s.router = router
	return s
}

func (s *Server) register(r chi.Router) {
	r.Get("/state", s.stateHandler())
	r.Get("/stats", s.statsHandler())
	r.Get("/metrics", s.metricsHandler())
	r.Delete("/metrics", s.metricsResetHandler())

	r.Post("/search", s.searchHandler())
	r.Post("/refresh", s.refreshHandler())

	r.Get("/slots", s.slotListHandler())
	r.Delete("/slots", s.clearHandler())
	r.Get("/slots.ics", s.calendarHandler())
	r.Get("/groups", s.groupListHandler())

	r.Get("/venues", s.venueListHandler())
	r.Get("/venues/{name}", s.venueDetailHandler())
	r.Put("/selection", s.selectHandler())
	r.Delete("/selection", s.backHandler())

	r.Get("/neighborhoods", s.neighborhoodListHandler())
	r.Put("/neighborhoods", s.neighborhoodSetHandler())

	r.Get("/toasts", s.toastListHandler())
	r.Delete("/toasts/{id}", s.toastDismissHandler())
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", logger.Fields{"addr": s.addr})
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down HTTP server", nil)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// requestLogger logs each request through the structured logger
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		logger.RecordTiming("http.request", elapsed)
		logger.IncrCounter("http.requests")
		logger.Debug("HTTP request", logger.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   elapsed.String(),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("Encoding response failed", logger.Fields{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
