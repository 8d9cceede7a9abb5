// Package web provides the HTTP server and handlers for the swim meet UI.
package web

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/swimmeet/internal/auth"
	"github.com/JonMunkholm/swimmeet/internal/config"
	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/web/middleware"
	"github.com/JonMunkholm/swimmeet/internal/web/templates"
)

// Server is the HTTP server for the swim meet application.
type Server struct {
	service  *core.Service
	cfg      *config.Config
	verifier *auth.Verifier
	media    http.Handler

	router  *chi.Mux
	server  *http.Server
	limiter *rateLimiter
	uploads *rateLimiter
}

// NewServer creates a new Server. media serves stored photos under
// cfg.Storage.PublicURL; a nil media disables photo uploads.
func NewServer(service *core.Service, cfg *config.Config, media http.Handler) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		media:   media,
		router:  chi.NewRouter(),
	}
	if cfg.Auth.Enabled() {
		var opts []auth.Option
		if cfg.Auth.Issuer != "" {
			opts = append(opts, auth.WithIssuer(cfg.Auth.Issuer))
		}
		s.verifier = auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience, opts...)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute, s.denyRate)
		s.router.Use(s.limiter.middleware)
	}

	s.router.Use(middleware.Session(middleware.SessionConfig{
		Verifier:      s.verifier,
		CookieName:    s.cfg.Auth.CookieName,
		CookieSecure:  s.cfg.Auth.CookieSecure,
		DefaultTenant: s.cfg.Tenant.DefaultID,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	if s.media != nil {
		prefix := s.cfg.Storage.PublicURL + "/"
		s.router.Handle(prefix+"*", http.StripPrefix(prefix, s.media))
	}

	// Pages
	s.router.Get("/", s.handleHome)
	s.router.Get("/statuses", s.handleStatuses)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/swimmers", func(r chi.Router) {
		r.Get("/", s.handleSwimmers)

		r.Group(func(r chi.Router) {
			r.Use(s.requireEditor)
			r.Get("/new", s.handleNewSwimmer)
			r.Post("/", s.handleSaveSwimmer)
			r.Get("/{id}/edit", s.handleEditSwimmer)
			r.Post("/{id}", s.handleSaveSwimmer)
		})
	})

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.requireEditor)
		if s.cfg.Rate.Enabled {
			s.uploads = newRateLimiter(s.cfg.Rate.UploadLimit, time.Minute, s.denyRate)
			r.With(s.uploads.middleware).Post("/photos", s.handleUploadPhoto)
		} else {
			r.Post("/photos", s.handleUploadPhoto)
		}
		r.Delete("/photos", s.handleRemovePhoto)
	})

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/signin", s.handleSignIn)
		r.Get("/callback", s.handleAuthCallback)
		r.Post("/session", s.handleCreateSession)
		r.Post("/signout", s.handleSignOut)
	})
}

// Start begins listening for HTTP requests on the configured address.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Close stops the rate limiter cleanup goroutines. It is safe to call more
// than once.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.stop()
	}
	if s.uploads != nil {
		s.uploads.stop()
	}
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// ErrSignInRequired is returned for edits by a signed-out viewer.
var ErrSignInRequired = errors.New("sign-in required")

var errRateLimited = errors.New("rate limit exceeded")

// requireEditor rejects signed-out requests when sign-in is configured.
func (s *Server) requireEditor(next http.Handler) http.Handler {
	if s.verifier == nil {
		return next
	}
	denied := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, ErrSignInRequired, http.StatusUnauthorized)
	})
	return middleware.RequireUser(denied)(next)
}

func (s *Server) denyRate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
}

// securityHeaders adds security headers to all responses. With csp set,
// each request gets a script nonce that templ components read back with
// templ.GetNonce.
func securityHeaders(csp bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			// Lets the table pick its layout on the server from the next request on.
			h.Set("Accept-CH", "Sec-CH-Viewport-Width")
			h.Add("Vary", "Sec-CH-Viewport-Width")

			if csp {
				nonce, err := newNonce()
				if err != nil {
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				h.Set("Content-Security-Policy", contentSecurityPolicy(nonce))
				r = r.WithContext(templ.WithNonce(r.Context(), nonce))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func contentSecurityPolicy(nonce string) string {
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'nonce-" + nonce + "' " + strings.Join(templates.ScriptSources, " "),
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src 'self'",
		"frame-ancestors 'none'",
	}, "; ")
}

func newNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// rateLimiter implements a simple token bucket rate limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
	deny     http.HandlerFunc

	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
// Rejected requests are passed to deny.
func newRateLimiter(rate int, window time.Duration, deny http.HandlerFunc) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		deny:     deny,
		done:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every window until stop is called.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
		}
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1, // consume one token
			lastReset: time.Now(),
		}
		return true
	}

	// Reset tokens if window has passed
	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by client IP.
// RemoteAddr has already been rewritten by TrustedRealIP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			rl.deny(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "json encode error", "error", err)
	}
}
