// Package server provides the HTTP API of the resume studio: template
// configuration, section reordering, preview rendering and PDF export.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/resume-studio/internal/cache"
	"github.com/jonathan/resume-studio/internal/composer"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	cache       *cache.Bolt
	stores      *Stores
	validator   middleware.TokenValidator
	printer     composer.Printer
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	CachePath   string
	ChromePath  string
	Verbose     bool
}

// Deps are the collaborators of a server. New builds them from Config;
// tests inject their own.
type Deps struct {
	Stores    *Stores
	Validator middleware.TokenValidator
	Printer   composer.Printer
	Limiter   *ratelimit.Limiter
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{}

	// The remote store is optional: without it configurations stay local.
	var remote store.RemoteStore
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err == nil {
			err = database.Migrate(ctx)
		}
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
		remote = database
	} else {
		log.Println("[SERVER] DATABASE_URL not set, remote replication disabled")
	}

	// A missing local cache degrades every store to memory only.
	var local store.LocalCache
	if cfg.CachePath != "" {
		bolt, err := cache.OpenBolt(cfg.CachePath)
		if err != nil {
			log.Printf("[SERVER] local cache unavailable, running in memory: %v", err)
		} else {
			s.cache = bolt
			local = bolt
		}
	}

	s.stores = NewStores(local, remote, store.Options{})
	s.validator = NewJWTService(jwtConfig).AsTokenValidator()
	s.printer = export.NewChromePrinter(cfg.ChromePath, cfg.Verbose)
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export launches a browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// NewWithDeps creates a server around injected collaborators. It does not
// listen; use Handler.
func NewWithDeps(deps Deps) *Server {
	s := &Server{
		stores:      deps.Stores,
		validator:   deps.Validator,
		printer:     deps.Printer,
		rateLimiter: deps.Limiter,
	}
	if s.stores == nil {
		s.stores = NewStores(cache.NewMemory(), nil, store.Options{})
	}
	return s
}

// Handler builds the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	auth := middleware.AuthMiddleware(s.validator)
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	mux.Handle("GET /templates/{variant}/config", protected(s.handleGetConfig))
	mux.Handle("PATCH /templates/{variant}/config", protected(s.handlePatchConfig))
	mux.Handle("POST /templates/{variant}/reorder", protected(s.handleReorder))
	mux.Handle("POST /templates/{variant}/sections/{section}/toggle", protected(s.handleToggleSection))
	mux.Handle("POST /templates/{variant}/reset", protected(s.handleReset))
	mux.Handle("POST /templates/{variant}/render", protected(s.handleRender))
	mux.Handle("POST /templates/{variant}/export", protected(s.handleExport))

	var h http.Handler = s.withLogging(s.withCORS(mux))
	if s.rateLimiter != nil {
		h = s.withRateLimit(h)
	}
	return h
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return s.Close(ctx)
}

// Close drains pending replication and releases storage.
func (s *Server) Close(ctx context.Context) error {
	var errs []error
	if s.stores != nil {
		if err := s.stores.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to drain replication: %w", err))
		}
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return errors.Join(errs...)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retry := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			log.Printf("[rate-limit] %s %s exceeded limit=%d", r.Method, r.URL.Path, info.Limit)
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// extractClientID uses the IP address from RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "remote": "disabled", "cache": "memory"}
	if s.db != nil {
		status["remote"] = "ok"
		if err := s.db.Ping(r.Context()); err != nil {
			status["remote"] = "unreachable"
		}
	}
	if s.cache != nil {
		status["cache"] = "bolt"
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status and writes it with any field details.
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[SERVER] %v", err)
	}
	body := map[string]any{"error": err.Error()}
	if details := errorDetails(err); len(details) > 0 {
		body["details"] = details
	}
	s.jsonResponse(w, status, body)
}
