package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health                  - Health check")
	fmt.Println("  GET    /stats                   - Server statistics")
	fmt.Println("  POST   /api/interview/start     - Start a mock interview session")
	fmt.Println("  POST   /api/interview/answer    - Submit an interview answer (JSON or multipart audio)")
	fmt.Println("  POST   /api/interview/questions - Pre-generate interview questions from a resume")
	fmt.Println("  PUT    /api/resume              - Store a resume")
	fmt.Println("  GET    /api/resume              - Fetch the stored resume")
	fmt.Println("  POST   /api/resume/analyze      - ATS-score a resume")
	fmt.Println("  POST   /api/resume/improve      - Improve a resume section")
	fmt.Println("  POST   /api/cover-letter        - Generate a cover letter")
	fmt.Println("  GET    /api/cover-letter        - List stored cover letters")
	fmt.Println("  DELETE /api/cover-letter/{id}   - Delete a cover letter")
	fmt.Println("  GET    /api/jobs                - Search job listings")
	fmt.Println("  POST   /api/jobs/saved          - Bookmark a job listing")
	fmt.Println("  GET    /api/jobs/saved          - List bookmarked jobs")
	fmt.Println("  DELETE /api/jobs/saved/{id}     - Remove a bookmarked job")
	fmt.Println("  GET    /api/insights            - Industry insights")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /api endpoints")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB), audio uploads: %d bytes (%.1f MB)\n",
			s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024),
			s.MaxAudioSize, float64(s.MaxAudioSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
