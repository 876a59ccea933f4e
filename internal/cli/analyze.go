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

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file] [job-description-file]",
	Short: "Score a resume against a job description",
	Long: `Analyze how well a resume matches a specific job description.
The command takes two arguments: the path to the resume file (plain text,
PDF or DOCX) and the path to the job description file. The result includes
an overall score, per-category breakdown, dealbreakers and an action plan.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: validateOutputFormat(&analyzeConfig),
	RunE:    runAnalyze,
}

var (
	analyzeConfig  common.CommandConfig
	analyzeCompany string
	analyzeTitle   string
)

func init() {
	addOutputFlags(analyzeCmd, &analyzeConfig)
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company name for context")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Job title for context")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	analyzeAIConfig := cfg.GetAnalyzeConfig()
	aiService, err := ai.NewService(&analyzeAIConfig, config.OpAnalyze, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (ai.AnalyzeMatchInput, error) {
		if len(contents) != 2 {
			return ai.AnalyzeMatchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return ai.AnalyzeMatchInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
			CompanyName:    analyzeCompany,
			JobTitle:       analyzeTitle,
		}, nil
	}

	logDetails := func(input ai.AnalyzeMatchInput, cfg common.CommandConfig) {
		logger.Info("Starting match analysis",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, input ai.AnalyzeMatchInput) (types.MatchAnalysis, *ai.TokenUsage, error) {
		return aiService.AnalyzeMatch(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze match: %w", err)
	}
	logger.Info("Match analysis completed successfully")
	return nil
}
