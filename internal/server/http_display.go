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
	fmt.Println("  GET    /health        - Health check")
	fmt.Println("  GET    /stats         - Server statistics")
	fmt.Println("  POST   /upload        - Upload a resume, opens a session (requires API key)")
	fmt.Println("  POST   /analyze       - Score resume against a job (requires API key)")
	fmt.Println("  POST   /profile       - Extract structured profile (requires API key)")
	fmt.Println("  POST   /coverletter   - Generate cover letter (requires API key)")
	fmt.Println("  POST   /interview     - Prepare interview questions (requires API key)")
	fmt.Println("  POST   /optimize      - Audit and rewrite resume sections (requires API key)")
	fmt.Println("  POST   /fit           - Score company fit (requires API key)")
	fmt.Println("  GET    /session/{id}  - Fetch a session (requires API key)")
	fmt.Println("  DELETE /session/{id}  - Delete a session (requires API key)")
	fmt.Println("  POST   /jobs/save     - Track a job in a session (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
	if s.MaxUploadSize > 0 {
		fmt.Printf("Upload size limit: %d bytes (%.1f MB)\n", s.MaxUploadSize, float64(s.MaxUploadSize)/(1024*1024))
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
