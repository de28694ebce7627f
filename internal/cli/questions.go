package cli

import (
	"context"
	"fmt"

	"careerpilot/internal/ai"
	"careerpilot/internal/common"
	"careerpilot/internal/types"

	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions [resume-file]",
	Short: "Generate interview questions from a resume",
	Long: `Generate a set of interview questions tailored to a candidate's resume
and target industry. The output pairs the question list with a short
analysis of the resume the questions were derived from, suitable for
interview preparation or for seeding a mock interview session.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if questionsConfig.OutputFormat == "" {
			questionsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(questionsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runQuestions,
}

var questionsConfig common.CommandConfig
var questionsIndustry string

func init() {
	questionsCmd.Flags().StringVarP(&questionsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	questionsCmd.Flags().StringVar(&questionsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	questionsCmd.Flags().StringVarP(&questionsIndustry, "industry", "i", "technology", "Target industry for the questions")

	// Add completion for format flag
	_ = questionsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runQuestions(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the interview operation
	interviewAIConfig := cfg.GetInterviewAIConfig()
	aiService, err := ai.NewService(&interviewAIConfig, "interview", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.QuestionSetInput, error) {
		if len(contents) != 1 {
			return types.QuestionSetInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.QuestionSetInput{
			ResumeText: contents[0],
			Industry:   questionsIndustry,
		}, nil
	}

	logDetails := func(input types.QuestionSetInput, cfg common.CommandConfig) {
		logger.Info("Starting question set generation",
			"resume_chars", len(input.ResumeText),
			"industry", input.Industry,
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	questionsOperation := func(ctx context.Context, input types.QuestionSetInput) (types.QuestionSetOutput, *ai.TokenUsage, error) {
		return aiService.Provider.GenerateQuestionSet(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		questionsConfig,
		args,
		createInput,
		questionsOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate question set: %w", err)
	}
	logger.Info("Question set generation completed successfully")
	return nil
}
