// Package server is the HTTP shell around the schedule store: a login and
// token-verification API plus guarded read, export and import endpoints.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"weekplan/internal/auth"
	"weekplan/internal/layout"
	"weekplan/internal/schedule"
)

// DefaultMaxRequests is the per-IP request budget per second.
const DefaultMaxRequests = 20

// Options wires the server's collaborators.
type Options struct {
	Store       *schedule.Store
	Credentials *auth.Credentials
	Tokens      *auth.Tokens
	Log         *zap.Logger

	// Slots are the grid rows for the schedule view; nil means the
	// default 8 AM to 6 PM window.
	Slots []layout.Slot

	AllowedOrigins []string
	MaxRequests    int // per IP per second

	// Location anchors calendar exports; nil means time.Local.
	Location *time.Location
	Now      func() time.Time
}

// Server serves the schedule over HTTP.
type Server struct {
	store  *schedule.Store
	creds  *auth.Credentials
	tokens *auth.Tokens
	log    *zap.Logger
	slots  []layout.Slot
	loc    *time.Location
	now    func() time.Time
	router *chi.Mux
}

// New builds a server and its routes.
func New(opts Options) *Server {
	s := &Server{
		store:  opts.Store,
		creds:  opts.Credentials,
		tokens: opts.Tokens,
		log:    opts.Log,
		slots:  opts.Slots,
		loc:    opts.Location,
		now:    opts.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.slots == nil {
		s.slots = layout.DefaultSlots()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.creds == nil {
		s.creds = auth.NewCredentials()
	}
	maxRequests := opts.MaxRequests
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}

	s.router = chi.NewRouter()
	s.setupRoutes(opts.AllowedOrigins, maxRequests)
	return s
}

func (s *Server) setupRoutes(allowedOrigins []string, maxRequests int) {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(httprate.LimitByIP(maxRequests, time.Second))
	r.Use(auth.Guard(s.tokens, s.log))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/verify", s.handleVerify)
	})

	r.Get(auth.LoginPath, s.handleLoginInfo)

	r.Get("/", s.handleView)
	r.Get("/export", s.handleExport)
	r.Post("/import", s.handleImport)
	r.Get("/calendar.ics", s.handleCalendar)
	r.Get("/report", s.handleReport)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", r.RemoteAddr))
	})
}
