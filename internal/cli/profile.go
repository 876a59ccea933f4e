package cli

import (
	"context"
	"fmt"

	"careerlens/internal/ai"
	"careerlens/internal/common"
	"careerlens/internal/config"
	"careerlens/internal/types"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile [resume-file]",
	Short: "Extract a structured profile from a resume",
	Long: `Extract a structured candidate profile from a resume: technical
skills grouped by category, experience level, role fit and search keywords.
The resume file may be plain text, PDF or DOCX.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateOutputFormat(&profileConfig),
	RunE:    runProfile,
}

var profileConfig common.CommandConfig

func init() {
	addOutputFlags(profileCmd, &profileConfig)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	profileAIConfig := cfg.GetProfileConfig()
	aiService, err := ai.NewService(&profileAIConfig, config.OpProfile, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(resumeText string, cfg common.CommandConfig) {
		logger.Info("Starting profile extraction",
			"resume_chars", len(resumeText),
			"output_format", cfg.OutputFormat)
	}

	profileOperation := func(ctx context.Context, resumeText string) (types.ExtractedProfile, *ai.TokenUsage, error) {
		return aiService.ExtractProfile(ctx, resumeText)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		profileConfig,
		args,
		createInput,
		profileOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to extract profile: %w", err)
	}
	logger.Info("Profile extraction completed successfully")
	return nil
}
