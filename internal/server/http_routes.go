package server

import (
	"net/http"
	"strings"

	"careerpilot/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.bodyLimitMiddleware(s.MaxRequestSize)
	audioLimitHandler := s.bodyLimitMiddleware(s.MaxAudioSize)

	// protect chains the middleware applied to every API endpoint.
	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimitHandler(s.authMiddleware(requestLimitHandler(h)))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)

	// Interview endpoints. The answer endpoint carries audio uploads, so
	// it gets the larger body limit.
	mux.HandleFunc("POST /api/interview/start", protect(s.createStartInterviewHandler(om)))
	mux.HandleFunc("POST /api/interview/answer",
		rateLimitHandler(s.authMiddleware(audioLimitHandler(s.createSubmitAnswerHandler(om)))))
	mux.HandleFunc("POST /api/interview/questions", protect(s.createQuestionSetHandler(om)))

	// Resume and cover letter endpoints
	mux.HandleFunc("PUT /api/resume", protect(s.saveResumeHandler))
	mux.HandleFunc("GET /api/resume", protect(s.getResumeHandler))
	mux.HandleFunc("POST /api/resume/analyze", protect(s.createAnalyzeResumeHandler(om)))
	mux.HandleFunc("POST /api/resume/improve", protect(s.improveResumeHandler))
	mux.HandleFunc("POST /api/cover-letter", protect(s.createCoverLetterHandler(om)))
	mux.HandleFunc("GET /api/cover-letter", protect(s.listCoverLettersHandler))
	mux.HandleFunc("DELETE /api/cover-letter/{id}", protect(s.deleteCoverLetterHandler))

	// Job search and bookmarks
	mux.HandleFunc("GET /api/jobs", protect(s.createJobSearchHandler(om)))
	mux.HandleFunc("POST /api/jobs/saved", protect(s.saveJobHandler))
	mux.HandleFunc("GET /api/jobs/saved", protect(s.listSavedJobsHandler))
	mux.HandleFunc("DELETE /api/jobs/saved/{id}", protect(s.deleteSavedJobHandler))

	// Industry insights
	mux.HandleFunc("GET /api/insights", protect(s.insightsHandler))

	return mux
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		// Check for API key in X-API-Key header
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			// Check for Bearer token in Authorization header as fallback
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "UNAUTHORIZED", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "UNAUTHORIZED", "Invalid API key", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// bodyLimitMiddleware limits the size of incoming request bodies
func (s *Server) bodyLimitMiddleware(limit int64) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
