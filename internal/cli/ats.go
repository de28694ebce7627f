package cli

import (
	"context"
	"fmt"

	"careerpilot/internal/ai"
	"careerpilot/internal/common"
	"careerpilot/internal/types"

	"github.com/spf13/cobra"
)

var atsCmd = &cobra.Command{
	Use:   "ats [resume-file]",
	Short: "Analyze a resume for ATS compatibility",
	Long: `Analyze a resume to evaluate how well it would perform against applicant
tracking systems. The analysis scores the resume, detects and flags keywords,
checks the structural sections, and suggests concrete improvements.

The analysis includes:
- ATS compatibility and keyword match scores
- Detected and missing keywords for the target industry
- Resume structure review (summary, experience, education, skills)
- Strengths, weaknesses, and improvement tips`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if atsConfig.OutputFormat == "" {
			atsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(atsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAts,
}

var atsConfig common.CommandConfig
var atsIndustry string

func init() {
	atsCmd.Flags().StringVarP(&atsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	atsCmd.Flags().StringVar(&atsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	atsCmd.Flags().StringVarP(&atsIndustry, "industry", "i", "technology", "Target industry for keyword analysis")

	// Add completion for format flag
	_ = atsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAts(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the resume operation
	resumeAIConfig := cfg.GetResumeAIConfig()
	aiService, err := ai.NewService(&resumeAIConfig, "resume", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.AnalyzeResumeInput, error) {
		if len(contents) != 1 {
			return types.AnalyzeResumeInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.AnalyzeResumeInput{
			ResumeText: contents[0],
			Industry:   atsIndustry,
		}, nil
	}

	logDetails := func(input types.AnalyzeResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting ATS resume analysis",
			"resume_chars", len(input.ResumeText),
			"industry", input.Industry,
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	atsOperation := func(ctx context.Context, input types.AnalyzeResumeInput) (types.ATSAnalysis, *ai.TokenUsage, error) {
		return aiService.Provider.AnalyzeResumeATS(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		atsConfig,
		args,
		createInput,
		atsOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("ATS resume analysis completed successfully")
	return nil
}
