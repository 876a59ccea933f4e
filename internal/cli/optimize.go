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

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Audit and rewrite resume sections",
	Long: `Audit a resume section by section, scoring each one and proposing
a rewrite. With a job description as second argument the audit targets
that role; without one it targets general impact.`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: validateOutputFormat(&optimizeConfig),
	RunE:    runOptimize,
}

var optimizeConfig common.CommandConfig

func init() {
	addOutputFlags(optimizeCmd, &optimizeConfig)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	optimizeAIConfig := cfg.GetOptimizeConfig()
	aiService, err := ai.NewService(&optimizeAIConfig, config.OpOptimize, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (ai.OptimizeInput, error) {
		if len(contents) < 1 {
			return ai.OptimizeInput{}, fmt.Errorf("expected at least 1 file path, got %d", len(contents))
		}
		input := ai.OptimizeInput{ResumeText: contents[0]}
		if len(contents) == 2 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input ai.OptimizeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume optimization",
			"resume_chars", len(input.ResumeText),
			"targeted", input.JobDescription != "",
			"output_format", cfg.OutputFormat)
	}

	optimizeOperation := func(ctx context.Context, input ai.OptimizeInput) (types.ResumeOptimization, *ai.TokenUsage, error) {
		return aiService.OptimizeResume(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		args,
		createInput,
		optimizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed successfully")
	return nil
}
