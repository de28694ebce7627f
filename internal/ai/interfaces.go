package ai

import (
	"context"

	"careerpilot/internal/types"
)

// QuestionInput carries the conversational context needed to produce an
// interview question.
type QuestionInput struct {
	Industry      string
	ResumeText    string
	PrevQuestion  string
	PrevAnswer    string
	AskedSoFar    []string
	TurnNumber    int
	AvoidQuestion string // set when regenerating a near-duplicate question
	Strict        bool   // set on the retry after a failed format check
}

// AnalysisInput carries one question/answer exchange for evaluation.
type AnalysisInput struct {
	Industry string
	Question string
	Answer   string
}

// ReportInput carries the full interview history for final report generation.
type ReportInput struct {
	Industry string
	Turns    []types.TurnAnalysis
}

// AIProvider interface for different AI implementations.
// All generation methods return token usage information - callers can ignore it if not needed.
type AIProvider interface {
	GenerateFirstQuestion(ctx context.Context, input QuestionInput) (string, *TokenUsage, error)
	GenerateNextQuestion(ctx context.Context, input QuestionInput) (string, *TokenUsage, error)
	AnalyzeAnswer(ctx context.Context, input AnalysisInput) (types.AnswerAnalysis, *TokenUsage, error)
	GenerateReport(ctx context.Context, input ReportInput) (types.InterviewReport, *TokenUsage, error)
	GenerateQuestionSet(ctx context.Context, input types.QuestionSetInput) (types.QuestionSetOutput, *TokenUsage, error)
	AnalyzeResumeATS(ctx context.Context, input types.AnalyzeResumeInput) (types.ATSAnalysis, *TokenUsage, error)
	ImproveContent(ctx context.Context, input types.ImproveContentInput) (string, *TokenUsage, error)
	GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, *TokenUsage, error)
	GenerateIndustryInsights(ctx context.Context, industry string) (types.IndustryInsights, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
