package cli

import (
	"careerlens/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that provides REST API endpoints for resume analysis.

Available endpoints:
- POST /upload: Upload a resume (PDF, DOCX or text), opens a session
- POST /analyze: Score a resume against a job description
- POST /profile: Extract a structured candidate profile
- POST /coverletter: Generate a cover letter
- POST /interview: Prepare interview questions
- POST /optimize: Audit and rewrite resume sections
- POST /fit: Score company fit
- GET/DELETE /session/{id}: Fetch or delete a session
- POST /jobs/save: Track a job in a session
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxRequestSize,
		MaxUploadSize:  cfg.App.MaxUploadSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, logger).Start()
}
