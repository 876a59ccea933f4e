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

var coverLetterCmd = &cobra.Command{
	Use:   "coverletter [resume-file] [job-description-file] [company-research-file]",
	Short: "Generate a cover letter for a specific job",
	Long: `Generate a tailored cover letter from a resume and a job description.
An optional third argument points at a company research file whose content
is woven into the letter.`,
	Args:    cobra.RangeArgs(2, 3),
	PreRunE: validateOutputFormat(&coverLetterConfig),
	RunE:    runCoverLetter,
}

var (
	coverLetterConfig  common.CommandConfig
	coverLetterCompany string
	coverLetterTitle   string
)

func init() {
	addOutputFlags(coverLetterCmd, &coverLetterConfig)
	coverLetterCmd.Flags().StringVar(&coverLetterCompany, "company", "", "Company name to address the letter to")
	coverLetterCmd.Flags().StringVar(&coverLetterTitle, "title", "", "Job title for the letter")
}

func runCoverLetter(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	coverLetterAIConfig := cfg.GetCoverLetterConfig()
	aiService, err := ai.NewService(&coverLetterAIConfig, config.OpCoverLetter, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (ai.CoverLetterInput, error) {
		if len(contents) < 2 {
			return ai.CoverLetterInput{}, fmt.Errorf("expected at least 2 file paths, got %d", len(contents))
		}
		input := ai.CoverLetterInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
			CompanyName:    coverLetterCompany,
			JobTitle:       coverLetterTitle,
		}
		if len(contents) == 3 {
			input.CompanyResearch = contents[2]
		}
		return input, nil
	}

	logDetails := func(input ai.CoverLetterInput, cfg common.CommandConfig) {
		logger.Info("Starting cover letter generation",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"has_research", input.CompanyResearch != "",
			"output_format", cfg.OutputFormat)
	}

	coverLetterOperation := func(ctx context.Context, input ai.CoverLetterInput) (types.CoverLetter, *ai.TokenUsage, error) {
		return aiService.GenerateCoverLetter(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		coverLetterConfig,
		args,
		createInput,
		coverLetterOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}
	logger.Info("Cover letter generation completed successfully")
	return nil
}
