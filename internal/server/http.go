package server

import (
	"time"

	"careerpilot/internal/config"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/insights"
	"careerpilot/internal/interview"
	"careerpilot/internal/jobs"
	"careerpilot/internal/resume"
	"careerpilot/internal/storage"
	"careerpilot/internal/types"
)

// SaveResumeRequest represents the request body for storing a resume
type SaveResumeRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// AnalyzeResumeRequest represents the request body for the ATS analysis endpoint
type AnalyzeResumeRequest struct {
	UserID     string `json:"userId"`
	ResumeText string `json:"resumeText"`
	Industry   string `json:"industry"`
}

// CoverLetterRequest represents the request body for cover letter generation
type CoverLetterRequest struct {
	UserID         string `json:"userId"`
	CompanyName    string `json:"companyName"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText,omitempty"`
	Industry       string `json:"industry,omitempty"`
}

// SaveJobRequest represents the request body for bookmarking a job listing
type SaveJobRequest struct {
	UserID string    `json:"userId"`
	Job    types.Job `json:"job"`
}

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server holds configuration and wired services for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limits
	MaxRequestSize int64
	MaxAudioSize   int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *cpErrors.Logger

	// Wired services, built during Start
	engine      *interview.Engine
	resumeSvc   *resume.Service
	jobsSvc     *jobs.Service
	insightsSvc *insights.Service
	store       *storage.SQLiteStore
	closers     []func()
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	MaxAudioSize   int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *cpErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		MaxAudioSize:   cfg.MaxAudioSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
