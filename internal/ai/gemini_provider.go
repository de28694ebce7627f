package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"careerpilot/internal/config"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *cpErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *cpErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, cpErrors.NewAIError(cpErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, getAIModelCheckTimeout())
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection refused) are worth retrying
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Google API errors with transient HTTP status codes
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// generate runs one guarded generation call: tracing attributes are set by
// the caller, the circuit breaker and retry loop wrap the API call.
func (g *GeminiProvider) generate(ctx context.Context, operationName, userPrompt, systemPrompt string, genaiConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	return g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
}

// executeAIOperation is a generic helper to run structured AI operations with
// common tracing, circuit breaker, and JSON parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("careerpilot.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	result, err := g.generate(ctx, operationName, userPrompt, systemPrompt, genaiConfig)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, cpErrors.NewAIError(cpErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	if err := json.Unmarshal([]byte(stripCodeFence(result.Text())), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, cpErrors.NewAIError("AI_RESPONSE_PARSE_FAILED", "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	recordTokenUsage(span, tokenUsage)

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// executeAITextOperation runs AI operations whose output is plain text
// (questions, improved content, cover letters).
func executeAITextOperation(
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	spanAttributes ...attribute.KeyValue,
) (string, *TokenUsage, error) {
	tracer := otel.Tracer("careerpilot.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	result, err := g.generate(ctx, operationName, userPrompt, systemPrompt, g.buildTextConfig())
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, cpErrors.NewAIError(cpErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	text := strings.TrimSpace(stripCodeFence(result.Text()))
	if text == "" {
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, cpErrors.NewAIError("AI_RESPONSE_PARSE_FAILED", "Empty AI response for "+operationName, nil)
	}

	tokenUsage := extractTokenUsage(result)
	recordTokenUsage(span, tokenUsage)

	span.SetAttributes(attribute.Bool("success", true))
	return text, tokenUsage, nil
}

// GenerateFirstQuestion produces the opening question for an interview session
func (g *GeminiProvider) GenerateFirstQuestion(ctx context.Context, input QuestionInput) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.FirstQuestion, input.Industry, input.ResumeText)
	if input.Strict {
		userPrompt += "\nKeep the question under 100 characters. Ask it directly, with no preamble."
	}

	return executeAITextOperation(
		g,
		ctx,
		"first_question",
		userPrompt,
		DefaultSystemPrompts.FirstQuestion,
		attribute.String("interview.industry", input.Industry),
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)
}

// GenerateNextQuestion produces a follow-up question based on the previous exchange
func (g *GeminiProvider) GenerateNextQuestion(ctx context.Context, input QuestionInput) (string, *TokenUsage, error) {
	asked := "- (none)"
	if len(input.AskedSoFar) > 0 {
		asked = "- " + strings.Join(input.AskedSoFar, "\n- ")
	}
	avoidClause := ""
	if input.AvoidQuestion != "" {
		avoidClause = "\nDo not ask anything similar to: " + input.AvoidQuestion
	}

	userPrompt := fmt.Sprintf(DefaultUserPrompts.NextQuestion,
		input.Industry, input.TurnNumber, asked, input.PrevQuestion, input.PrevAnswer, avoidClause)

	return executeAITextOperation(
		g,
		ctx,
		"next_question",
		userPrompt,
		DefaultSystemPrompts.NextQuestion,
		attribute.String("interview.industry", input.Industry),
		attribute.Int("interview.turn", input.TurnNumber),
		attribute.Bool("interview.regenerated", input.AvoidQuestion != ""),
	)
}

// AnalyzeAnswer evaluates one question/answer exchange
func (g *GeminiProvider) AnalyzeAnswer(ctx context.Context, input AnalysisInput) (types.AnswerAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.AnalyzeAnswer, input.Industry, input.Question, input.Answer)

	output, tokenUsage, err := executeAIOperation[types.AnswerAnalysis](
		g,
		ctx,
		"analyze_answer",
		userPrompt,
		DefaultSystemPrompts.AnalyzeAnswer,
		g.buildAnalysisSchema(),
		attribute.String("interview.industry", input.Industry),
		attribute.Int("input.answer_length", len(input.Answer)),
	)
	if err != nil {
		return types.AnswerAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("analysis.technical_accuracy", output.TechnicalAccuracy),
			attribute.Int("analysis.problem_solving", output.ProblemSolving),
			attribute.Int("analysis.communication_clarity", output.CommunicationClarity),
		)
	}

	return output, tokenUsage, nil
}

// GenerateReport produces the final interview evaluation
func (g *GeminiProvider) GenerateReport(ctx context.Context, input ReportInput) (types.InterviewReport, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.Report, input.Industry, formatTranscript(input.Turns))

	output, tokenUsage, err := executeAIOperation[types.InterviewReport](
		g,
		ctx,
		"generate_report",
		userPrompt,
		DefaultSystemPrompts.Report,
		g.buildReportSchema(),
		attribute.String("interview.industry", input.Industry),
		attribute.Int("interview.turns", len(input.Turns)),
	)
	if err != nil {
		return types.InterviewReport{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("report.strengths_count", len(output.ArchitectureStrengths)),
			attribute.Int("report.improvements_count", len(output.TechnicalImprovements)),
		)
	}

	return output, tokenUsage, nil
}

// GenerateQuestionSet pre-generates a full set of interview questions from a resume
func (g *GeminiProvider) GenerateQuestionSet(ctx context.Context, input types.QuestionSetInput) (types.QuestionSetOutput, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.QuestionSet, input.Industry, input.ResumeText, input.Industry)

	output, tokenUsage, err := executeAIOperation[types.QuestionSetOutput](
		g,
		ctx,
		"question_set",
		userPrompt,
		DefaultSystemPrompts.QuestionSet,
		g.buildQuestionSetSchema(),
		attribute.String("interview.industry", input.Industry),
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)
	if err != nil {
		return types.QuestionSetOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.question_count", len(output.Questions)))
	}

	return output, tokenUsage, nil
}

// AnalyzeResumeATS scores a resume for ATS compatibility
func (g *GeminiProvider) AnalyzeResumeATS(ctx context.Context, input types.AnalyzeResumeInput) (types.ATSAnalysis, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.ResumeATS, input.Industry, input.ResumeText)

	output, tokenUsage, err := executeAIOperation[types.ATSAnalysis](
		g,
		ctx,
		"analyze_resume",
		userPrompt,
		DefaultSystemPrompts.ResumeATS,
		g.buildATSSchema(),
		attribute.String("resume.industry", input.Industry),
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)
	if err != nil {
		return types.ATSAnalysis{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("ats.score", output.ATSScore),
			attribute.Int("ats.keyword_match", output.KeywordMatch),
		)
	}

	return output, tokenUsage, nil
}

// ImproveContent rewrites a piece of resume content
func (g *GeminiProvider) ImproveContent(ctx context.Context, input types.ImproveContentInput) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.ImproveContent, input.Type, input.Industry, input.Current)

	return executeAITextOperation(
		g,
		ctx,
		"improve_content",
		userPrompt,
		DefaultSystemPrompts.ImproveContent,
		attribute.String("improve.type", input.Type),
		attribute.String("improve.industry", input.Industry),
		attribute.Int("input.content_length", len(input.Current)),
	)
}

// GenerateCoverLetter produces a markdown cover letter for a specific job
func (g *GeminiProvider) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.CoverLetter,
		input.JobTitle, input.CompanyName, input.JobDescription, input.ResumeText, input.Industry)

	return executeAITextOperation(
		g,
		ctx,
		"cover_letter",
		userPrompt,
		DefaultSystemPrompts.CoverLetter,
		attribute.String("cover_letter.company", input.CompanyName),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)
}

// GenerateIndustryInsights produces market data for an industry
func (g *GeminiProvider) GenerateIndustryInsights(ctx context.Context, industry string) (types.IndustryInsights, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(DefaultUserPrompts.IndustryInsights, industry)

	output, tokenUsage, err := executeAIOperation[types.IndustryInsights](
		g,
		ctx,
		"industry_insights",
		userPrompt,
		DefaultSystemPrompts.IndustryInsights,
		g.buildInsightsSchema(),
		attribute.String("insights.industry", industry),
	)
	if err != nil {
		return types.IndustryInsights{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("insights.demand_level", output.DemandLevel),
			attribute.Int("insights.salary_ranges", len(output.SalaryRanges)),
		)
	}

	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildTextConfig creates the generation config for plain-text operations
func (g *GeminiProvider) buildTextConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}
	return config
}

// buildAnalysisSchema creates the schema for answer evaluation
func (g *GeminiProvider) buildAnalysisSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"technicalAccuracy":    {Type: genai.TypeInteger},
				"problemSolving":       {Type: genai.TypeInteger},
				"communicationClarity": {Type: genai.TypeInteger},
				"keyStrength":          {Type: genai.TypeString},
				"technicalImprovement": {Type: genai.TypeString},
				"followUpQuestion":     {Type: genai.TypeString},
			},
			Required: []string{"technicalAccuracy", "problemSolving", "communicationClarity",
				"keyStrength", "technicalImprovement", "followUpQuestion"},
		},
	}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildReportSchema creates the schema for final report generation
func (g *GeminiProvider) buildReportSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"technicalAssessment": {Type: genai.TypeString},
				"architectureStrengths": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"technicalImprovements": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"learningPath": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"technicalAssessment", "architectureStrengths", "technicalImprovements", "learningPath"},
		},
	}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildQuestionSetSchema creates the schema for question pre-generation
func (g *GeminiProvider) buildQuestionSetSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"questions": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"analysis": {Type: genai.TypeString},
			},
			Required: []string{"questions", "analysis"},
		},
	}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildATSSchema creates the schema for resume ATS analysis
func (g *GeminiProvider) buildATSSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"atsScore":     {Type: genai.TypeInteger},
				"keywordMatch": {Type: genai.TypeInteger},
				"feedback":     {Type: genai.TypeString},
				"detectedKeywords": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"missingKeywords": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"improvementTips": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"resumeStructure": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString},
							"status":      {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
						},
						Required: []string{"name", "status", "description"},
					},
				},
				"strengthsAndWeaknesses": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"strengths": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"weaknesses": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
					},
					Required: []string{"strengths", "weaknesses"},
				},
			},
			Required: []string{"atsScore", "keywordMatch", "feedback", "detectedKeywords",
				"missingKeywords", "improvementTips", "resumeStructure", "strengthsAndWeaknesses"},
		},
	}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildInsightsSchema creates the schema for industry insights
func (g *GeminiProvider) buildInsightsSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"salaryRanges": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"role":     {Type: genai.TypeString},
							"min":      {Type: genai.TypeNumber},
							"max":      {Type: genai.TypeNumber},
							"median":   {Type: genai.TypeNumber},
							"location": {Type: genai.TypeString},
						},
						Required: []string{"role", "min", "max", "median", "location"},
					},
				},
				"growthRate":  {Type: genai.TypeNumber},
				"demandLevel": {Type: genai.TypeString, Enum: []string{"HIGH", "MEDIUM", "LOW"}},
				"topSkills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"marketOutlook": {Type: genai.TypeString, Enum: []string{"POSITIVE", "NEUTRAL", "NEGATIVE"}},
				"keyTrends": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"recommendedSkills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"salaryRanges", "growthRate", "demandLevel", "topSkills",
				"marketOutlook", "keyTrends", "recommendedSkills"},
		},
	}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// formatTranscript renders interview turns for the report prompt
func formatTranscript(turns []types.TurnAnalysis) string {
	var b strings.Builder
	for i, turn := range turns {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, turn.Question)
		fmt.Fprintf(&b, "A%d: %s\n", i+1, turn.Answer)
		fmt.Fprintf(&b, "Scores: technical=%d problem-solving=%d clarity=%d\n\n",
			turn.Technical, turn.ProblemSolving, turn.Clarity)
	}
	return b.String()
}

// stripCodeFence removes a surrounding markdown code fence from model output.
// Structured responses use a JSON MIME type, but some models still wrap text
// output in fences.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// recordTokenUsage attaches token counts to the active span
func recordTokenUsage(span trace.Span, usage *TokenUsage) {
	if usage == nil {
		return
	}
	span.SetAttributes(
		attribute.Int64("ai.tokens.input", usage.InputTokens),
		attribute.Int64("ai.tokens.output", usage.OutputTokens),
		attribute.Int64("ai.tokens.total", usage.TotalTokens),
	)
}

func getAIModelCheckTimeout() time.Duration {
	return 10 * time.Second
}
