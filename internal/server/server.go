// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/hypescreen/internal/api"
	"github.com/stwalsh4118/hypescreen/internal/config"
	"github.com/stwalsh4118/hypescreen/internal/display"
	"github.com/stwalsh4118/hypescreen/internal/logger"
	"github.com/stwalsh4118/hypescreen/internal/middleware"
)

// Server represents the kiosk HTTP server and the display session behind it
type Server struct {
	config  *config.Config
	session *display.Session
	router  *gin.Engine

	sessionCtx    context.Context
	cancelSession context.CancelFunc
	sessionDone   chan error

	mu      sync.Mutex
	server  *http.Server
	started bool

	stopped  chan struct{}
	stopOnce sync.Once
}

// New creates a new server instance
func New(cfg *config.Config, session *display.Session) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		config:        cfg,
		session:       session,
		sessionCtx:    ctx,
		cancelSession: cancel,
		sessionDone:   make(chan error, 1),
		stopped:       make(chan struct{}),
	}
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	// Set Gin mode based on log level
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Polling endpoints are hit every second by the kiosk page
	s.router.Use(middleware.RequestLogger("/api/display", "/api/countdown"))
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	api.SetupPageRoutes(s.router)
	if s.config.Display.MediaDir != "" {
		s.router.Static("/media", s.config.Display.MediaDir)
	}

	apiGroup := s.router.Group("/api")
	api.SetupHealthRoutes(apiGroup, s.session)
	api.SetupDisplayRoutes(apiGroup, s.session)
}

// Handler returns the configured router, building it on first use
func (s *Server) Handler() http.Handler {
	if s.router == nil {
		s.setupRouter()
	}
	return s.router
}

// Start runs the display session and the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	handler := s.Handler()
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("server already started")
	}
	// Shutdown already ran
	if s.sessionCtx.Err() != nil {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.startSessionLocked()

	srv := &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}
	s.server = srv
	s.mu.Unlock()

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Str("session_id", s.session.ID().String()).
		Msg("Starting HTTP server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// ListenAndServe returns as soon as the listener closes; wait for Shutdown to finish
	<-s.stopped
	return nil
}

// startSessionLocked runs the display session in the background. Callers hold s.mu.
func (s *Server) startSessionLocked() {
	go func() {
		s.sessionDone <- s.session.Run(s.sessionCtx)
	}()
}

// Shutdown tears the display session down and gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")
	defer s.stopOnce.Do(func() { close(s.stopped) })

	s.mu.Lock()
	s.cancelSession()
	started := s.started
	srv := s.server
	s.mu.Unlock()

	// Wait for the display session to cancel every timer
	if started {
		select {
		case err := <-s.sessionDone:
			if err != nil {
				logger.Log.Error().Err(err).Msg("Display session stopped with error")
			}
		case <-ctx.Done():
			if srv != nil {
				_ = srv.Close() // nolint:errcheck // already failing shutdown
			}
			return fmt.Errorf("display session shutdown: %w", ctx.Err())
		}
	}

	// Check if server was started before attempting shutdown
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
