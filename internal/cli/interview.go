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

var interviewCmd = &cobra.Command{
	Use:   "interview [resume-file] [job-description-file] [prior-analysis-file]",
	Short: "Prepare likely interview questions",
	Long: `Prepare interview questions for a specific role, with suggested
answers grounded in the resume. An optional third argument points at a
prior match analysis whose findings sharpen the questions.`,
	Args:    cobra.RangeArgs(2, 3),
	PreRunE: validateOutputFormat(&interviewConfig),
	RunE:    runInterview,
}

var (
	interviewConfig  common.CommandConfig
	interviewCompany string
	interviewTitle   string
)

func init() {
	addOutputFlags(interviewCmd, &interviewConfig)
	interviewCmd.Flags().StringVar(&interviewCompany, "company", "", "Company name for context")
	interviewCmd.Flags().StringVar(&interviewTitle, "title", "", "Job title for context")
}

func runInterview(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	interviewAIConfig := cfg.GetInterviewConfig()
	aiService, err := ai.NewService(&interviewAIConfig, config.OpInterview, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (ai.InterviewInput, error) {
		if len(contents) < 2 {
			return ai.InterviewInput{}, fmt.Errorf("expected at least 2 file paths, got %d", len(contents))
		}
		input := ai.InterviewInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
			CompanyName:    interviewCompany,
			JobTitle:       interviewTitle,
		}
		if len(contents) == 3 {
			input.PriorAnalysis = contents[2]
		}
		return input, nil
	}

	logDetails := func(input ai.InterviewInput, cfg common.CommandConfig) {
		logger.Info("Starting interview preparation",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"has_prior_analysis", input.PriorAnalysis != "",
			"output_format", cfg.OutputFormat)
	}

	interviewOperation := func(ctx context.Context, input ai.InterviewInput) (types.InterviewPrep, *ai.TokenUsage, error) {
		return aiService.PrepareInterview(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		interviewConfig,
		args,
		createInput,
		interviewOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to prepare interview: %w", err)
	}
	logger.Info("Interview preparation completed successfully")
	return nil
}
