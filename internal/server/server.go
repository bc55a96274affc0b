// Package server provides the HTTP API for laying out and rendering documents.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/resume-pdf/internal/config"
	"github.com/jonathan/resume-pdf/internal/layout"
	"github.com/jonathan/resume-pdf/internal/server/middleware"
	"github.com/jonathan/resume-pdf/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	render          config.Config
	layout          layout.Config
	version         string
	shutdownTimeout time.Duration
	rateLimiter     *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port    int
	Version string
	Render  config.Config     // page geometry and PDF options for every request
	Env     config.ServerEnv  // zero fields take the NewServerEnv defaults
	Limits  *ratelimit.Config // nil reads RATE_LIMIT_* from the environment
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if err := cfg.Render.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}

	env := cfg.Env
	if env.MaxBodyBytes <= 0 {
		env.MaxBodyBytes = 1 << 20
	}
	if env.RequestTimeout <= 0 {
		env.RequestTimeout = 30 * time.Second
	}
	if env.ShutdownTimeout <= 0 {
		env.ShutdownTimeout = 10 * time.Second
	}

	limits := cfg.Limits
	if limits == nil {
		limits = ratelimit.LoadConfig()
	}

	s := &Server{
		render:          cfg.Render,
		layout:          cfg.Render.LayoutConfig(),
		version:         cfg.Version,
		shutdownTimeout: env.ShutdownTimeout,
		rateLimiter:     ratelimit.NewLimiter(limits),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /layout", s.handleLayout)
	mux.HandleFunc("POST /classify", s.handleClassify)
	mux.HandleFunc("GET /health", s.handleHealth)

	var h http.Handler = mux
	h = middleware.Timeout(env.RequestTimeout)(h)
	h = middleware.MaxBytes(env.MaxBodyBytes)(h)
	h = s.withCORS(h)
	h = s.withRateLimit(h)
	h = s.withLogging(h)
	h = middleware.RequestID(h)
	s.handler = h

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       env.RequestTimeout,
		WriteTimeout:      env.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens until ctx is canceled or the process receives SIGINT or
// SIGTERM, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("[server] stopped")
	return nil
}

// Close releases background resources
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Page-Count, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their token budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[server] %s %s %d %v id=%s", r.Method, r.URL.Path, rec.status,
			time.Since(start).Round(time.Microsecond), middleware.GetRequestID(r.Context()))
	})
}

// clientID identifies the caller by IP address from RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
	}
	log.Printf("[rate-limit] %s exceeded %d request(s) on %s %s", clientID(r), info.Limit, r.Method, r.URL.Path)
	s.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded, try again later")
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}
