package cli

import (
	"context"

	"careerlens/internal/common"
	"careerlens/internal/config"
	"careerlens/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "careerlens",
	Short: "A CLI tool for AI-assisted job search analysis",
	Long: `CareerLens analyzes resumes against job descriptions using AI.
It scores the match, extracts a structured candidate profile, generates
cover letters, prepares interview questions, audits resume sections and
scores company fit.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// addOutputFlags registers the shared output flags and their completion
func addOutputFlags(cmd *cobra.Command, cmdConfig *common.CommandConfig) {
	cmd.Flags().StringVarP(&cmdConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&cmdConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

// validateOutputFormat applies the default format and checks it against
// the supported list. Used as PreRunE by every output-producing command.
func validateOutputFormat(cmdConfig *common.CommandConfig) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if cmdConfig.OutputFormat == "" {
			cmdConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(cmdConfig.OutputFormat, cfg.App.SupportedFormats)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(coverLetterCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
