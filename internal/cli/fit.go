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

var fitCmd = &cobra.Command{
	Use:   "fit [resume-file] [job-description-file] [company-research-file]",
	Short: "Score fit with a specific company",
	Long: `Score how well a candidate fits a specific company beyond the raw
skills match. An optional third argument points at a company research file
that informs the verdict.`,
	Args:    cobra.RangeArgs(2, 3),
	PreRunE: validateOutputFormat(&fitConfig),
	RunE:    runFit,
}

var (
	fitConfig  common.CommandConfig
	fitCompany string
)

func init() {
	addOutputFlags(fitCmd, &fitConfig)
	fitCmd.Flags().StringVar(&fitCompany, "company", "", "Company name being scored")
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fitAIConfig := cfg.GetFitConfig()
	aiService, err := ai.NewService(&fitAIConfig, config.OpFit, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (ai.FitInput, error) {
		if len(contents) < 2 {
			return ai.FitInput{}, fmt.Errorf("expected at least 2 file paths, got %d", len(contents))
		}
		input := ai.FitInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
			CompanyName:    fitCompany,
		}
		if len(contents) == 3 {
			input.CompanyResearch = contents[2]
		}
		return input, nil
	}

	logDetails := func(input ai.FitInput, cfg common.CommandConfig) {
		logger.Info("Starting company fit scoring",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"company", input.CompanyName,
			"output_format", cfg.OutputFormat)
	}

	fitOperation := func(ctx context.Context, input ai.FitInput) (types.CompanyFit, *ai.TokenUsage, error) {
		return aiService.ScoreCompanyFit(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		fitConfig,
		args,
		createInput,
		fitOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score company fit: %w", err)
	}
	logger.Info("Company fit scoring completed successfully")
	return nil
}
