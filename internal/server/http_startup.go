package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"careerpilot/internal/ai"
	"careerpilot/internal/insights"
	"careerpilot/internal/interview"
	"careerpilot/internal/jobs"
	"careerpilot/internal/observability"
	"careerpilot/internal/resume"
	"careerpilot/internal/session"
	"careerpilot/internal/storage"
	"careerpilot/internal/transcribe"
)

// Start starts the HTTP server with all configured components
func (s *Server) Start() error {
	om, err := s.initializeObservability()
	if err != nil {
		return err
	}
	defer s.shutdownObservability(om)

	if err := s.initializeServices(om); err != nil {
		return err
	}
	defer s.closeServices()

	httpServer := s.setupHTTPServer(om)

	vaultClient, err := s.initializeVaultClient()
	if err != nil {
		return err
	}

	if err := s.configureTLS(httpServer, vaultClient, om); err != nil {
		return err
	}

	s.displayServerInfo()

	return s.startWithGracefulShutdown(httpServer)
}

// initializeObservability sets up observability components
func (s *Server) initializeObservability() (*observability.ObservabilityManager, error) {
	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)

	om, err := observability.NewObservabilityManager(obsConfig, s.AppConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	return om, nil
}

// shutdownObservability handles observability cleanup
func (s *Server) shutdownObservability(om *observability.ObservabilityManager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown observability")
	}
}

// initializeServices wires the interview engine and career services
func (s *Server) initializeServices(om *observability.ObservabilityManager) error {
	store, err := storage.NewSQLiteStore(s.AppConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	s.store = store
	s.closers = append(s.closers, func() {
		if err := store.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close storage")
		}
	})

	sessions, err := s.buildSessionStore()
	if err != nil {
		return err
	}

	interviewCfg := s.AppConfig.GetInterviewAIConfig()
	interviewAI, err := ai.NewService(&interviewCfg, "interview", s.Logger)
	if err != nil {
		return fmt.Errorf("failed to create interview AI service: %w", err)
	}

	transcriber, err := transcribe.NewFromConfig(s.AppConfig.Transcription, s.Logger)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	s.engine = interview.New(sessions, interviewAI.Provider, transcriber,
		s.AppConfig.Interview, s.Logger, om.GetMetrics())

	resumeCfg := s.AppConfig.GetResumeAIConfig()
	resumeAI, err := ai.NewService(&resumeCfg, "resume", s.Logger)
	if err != nil {
		return fmt.Errorf("failed to create resume AI service: %w", err)
	}
	s.resumeSvc = resume.NewService(store, resumeAI.Provider, s.Logger)

	s.jobsSvc = jobs.NewService(s.AppConfig.Jobs, s.Logger)

	insightsCfg := s.AppConfig.GetInsightsAIConfig()
	insightsAI, err := ai.NewService(&insightsCfg, "insights", s.Logger)
	if err != nil {
		return fmt.Errorf("failed to create insights AI service: %w", err)
	}
	s.insightsSvc = insights.NewService(store, insightsAI.Provider,
		insights.DefaultRefreshInterval, s.Logger)

	return nil
}

// buildSessionStore creates the configured session store backend
func (s *Server) buildSessionStore() (session.Store, error) {
	cfg := s.AppConfig.Session

	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, func() {
			if err := client.Close(); err != nil {
				s.Logger.LogError(err, "Failed to close Redis client")
			}
		})
		s.Logger.Info("Using Redis session store", "address", cfg.Redis.Address)
		return session.NewRedisStore(client, cfg.TTL), nil
	default:
		memStore := session.NewMemoryStore(cfg.TTL)
		s.closers = append(s.closers, memStore.Close)
		s.Logger.Info("Using in-memory session store", "ttl", cfg.TTL)
		return memStore, nil
	}
}

// closeServices releases service resources in reverse creation order
func (s *Server) closeServices() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer(om *observability.ObservabilityManager) *http.Server {
	mux := s.setupRoutes(om)
	handler := om.HTTPMiddleware()(mux)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}
}

// startWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func (s *Server) startWithGracefulShutdown(server *http.Server) error {
	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		var err error
		if server.TLSConfig != nil {
			// When using TLS with certificate content, ListenAndServeTLS gets
			// empty paths because the certificates are already loaded in the
			// TLS config
			if s.TLSConfig.CertContent != "" || s.TLSConfig.KeyContent != "" {
				err = server.ListenAndServeTLS("", "")
			} else {
				err = server.ListenAndServeTLS(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
			}
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Wait for either a signal or server error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		s.Logger.Info("Received shutdown signal, starting graceful shutdown",
			"signal", sig.String())

		return s.performGracefulShutdown(server)
	}
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server) error {
	// Create a context with timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop certificate manager if running
	if err := s.stopCertificateManager(); err != nil {
		s.Logger.LogError(err, "Failed to stop certificate manager")
	}

	// Clean up rate limiter if enabled
	s.cleanupRateLimiter()

	// Attempt graceful shutdown of HTTP server
	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

// stopCertificateManager stops the certificate manager if it's running
func (s *Server) stopCertificateManager() error {
	if s.CertificateManager != nil {
		return s.CertificateManager.Stop()
	}
	return nil
}

// cleanupRateLimiter cleans up the rate limiter resources
func (s *Server) cleanupRateLimiter() {
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}
}
