// Package server provides the HTTP API for editing, previewing and exporting a CV.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/share"
	"github.com/jonathan/cv-builder/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	session     *Session
	rateLimiter *ratelimit.Limiter
	corsOrigins []string
	log         zerolog.Logger
	closeStore  func()
}

// Config holds server configuration
type Config struct {
	Port         int
	CORSOrigins  []string
	Storage      storage.Options
	TemplateFile string
	Chrome       export.ChromeOptions
	ShareURL     string
	ShareWebhook string
	Logger       zerolog.Logger
}

// New creates a new server instance with its storage, renderer, browser
// engine and share targets.
func New(cfg Config) (*Server, error) {
	store, closeStore, err := storage.Open(context.Background(), cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	renderer := rendering.NewRenderer()
	if cfg.TemplateFile != "" {
		renderer, err = rendering.NewRendererFromFile(cfg.TemplateFile)
		if err != nil {
			closeStore()
			return nil, fmt.Errorf("failed to load template: %w", err)
		}
	}

	chromeOpts := cfg.Chrome
	chromeOpts.Logger = cfg.Logger.With().Str("component", "export").Logger()

	var native share.NativeSharer
	if cfg.ShareWebhook != "" {
		native = share.NewWebhookSharer(cfg.ShareWebhook)
	}

	session := NewSession(SessionOptions{
		Renderer:  renderer,
		Exporter:  export.NewChromeExporter(renderer, chromeOpts),
		Snapshots: storage.NewSnapshots(store, cfg.Logger.With().Str("component", "storage").Logger()),
		Sharer:    share.NewSharer(native, share.SystemClipboard{}, cfg.Logger.With().Str("component", "share").Logger()),
		ShareURL:  cfg.ShareURL,
		Logger:    cfg.Logger,
	})

	s := NewWithSession(cfg, session, ratelimit.NewLimiter(ratelimit.LoadConfig()))
	s.closeStore = closeStore
	return s, nil
}

// NewWithSession builds a server around an existing session.
func NewWithSession(cfg Config, session *Session, limiter *ratelimit.Limiter) *Server {
	s := &Server{
		session:     session,
		rateLimiter: limiter,
		corsOrigins: cfg.CORSOrigins,
		log:         cfg.Logger,
		closeStore:  func() {},
	}
	if len(s.corsOrigins) == 0 {
		s.corsOrigins = []string{"*"}
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export drives a browser
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /catalog", s.handleCatalog)

	// Document
	mux.HandleFunc("GET /cv", s.handleGetCV)
	mux.HandleFunc("PUT /cv", s.handleLoadCV)
	mux.HandleFunc("DELETE /cv", s.handleResetCV)
	mux.HandleFunc("GET /cv/validation", s.handleValidateCV)
	mux.HandleFunc("GET /cv/active-section", s.handleGetActiveSection)
	mux.HandleFunc("PUT /cv/active-section", s.handleSetActiveSection)
	mux.HandleFunc("PUT /cv/sections/{section}", s.handleUpdateSection)

	// Personal info
	mux.HandleFunc("PUT /cv/personal-info/{field}", s.handleUpdatePersonalField)
	mux.HandleFunc("POST /cv/personal-info/photo", s.handleUploadPhoto)
	mux.HandleFunc("DELETE /cv/personal-info/photo", s.handleClearPhoto)

	// List sections
	mux.HandleFunc("GET /cv/{section}/items", s.handleListItems)
	mux.HandleFunc("POST /cv/{section}/items", s.handleAddItem)
	mux.HandleFunc("PATCH /cv/{section}/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /cv/{section}/items/{id}", s.handleRemoveItem)
	mux.HandleFunc("POST /cv/{section}/items/{id}/toggle", s.handleToggleItem)
	mux.HandleFunc("GET /cv/{section}/expanded", s.handleExpanded)
	mux.HandleFunc("GET /cv/{section}/draft", s.handleGetDraft)
	mux.HandleFunc("PATCH /cv/{section}/draft", s.handleUpdateDraft)
	mux.HandleFunc("POST /cv/{section}/draft/commit", s.handleCommitDraft)

	// Customization
	mux.HandleFunc("GET /customization", s.handleGetCustomization)
	mux.HandleFunc("PUT /customization", s.handleSetCustomization)
	mux.HandleFunc("PATCH /customization/{key}", s.handleUpdateCustomization)
	mux.HandleFunc("GET /customization/presets", s.handleListPresets)
	mux.HandleFunc("POST /customization/presets/{name}", s.handleApplyPreset)

	// Output
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("POST /export/pdf", s.handleExportPDF)
	mux.HandleFunc("GET /export/status", s.handleExportStatus)
	mux.HandleFunc("POST /snapshot", s.handleSaveSnapshot)
	mux.HandleFunc("GET /snapshot", s.handleGetSnapshot)
	mux.HandleFunc("POST /snapshot/restore", s.handleRestoreSnapshot)
	mux.HandleFunc("POST /share", s.handleShare)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and shuts down on SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.closeStore()
	s.log.Info().Msg("server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Page-Count", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	})(next)
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		event := s.log.Info()
		if rec.status >= http.StatusInternalServerError {
			event = s.log.Error()
		} else if rec.status >= http.StatusBadRequest {
			event = s.log.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure logs err and writes it with the status HTTPStatus picks for it.
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	s.log.Warn().Err(err).Int("status", status).Msg("request failed")
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.Warn().
		Int("limit", info.Limit).
		Int("remaining", info.Remaining).
		Time("reset", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
