package resume

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"careerpilot/internal/ai"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/storage"
	"careerpilot/internal/types"
)

// minResumeLength rejects fragments that cannot be analyzed meaningfully.
const minResumeLength = 50

// Store is the persistence surface the resume service needs.
type Store interface {
	SaveResume(ctx context.Context, resume types.Resume) error
	GetResume(ctx context.Context, userID string) (types.Resume, error)
	CreateCoverLetter(ctx context.Context, letter *types.CoverLetter) error
	ListCoverLetters(ctx context.Context, userID string) ([]types.CoverLetter, error)
	DeleteCoverLetter(ctx context.Context, userID, id string) error
}

// Service owns resume documents and their AI-assisted operations: ATS
// analysis, content improvement, cover letter generation, and interview
// question pre-generation.
type Service struct {
	store    Store
	provider ai.AIProvider
	logger   *cpErrors.Logger
}

func NewService(store Store, provider ai.AIProvider, logger *cpErrors.Logger) *Service {
	return &Service{store: store, provider: provider, logger: logger}
}

// Save stores resume content, carrying over any prior ATS score when the
// new save does not include one.
func (s *Service) Save(ctx context.Context, resume types.Resume) error {
	if strings.TrimSpace(resume.UserID) == "" {
		return cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "userId is required", nil)
	}
	if strings.TrimSpace(resume.Content) == "" {
		return cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "resume content is required", nil)
	}

	if resume.ATSScore == 0 && resume.Feedback == "" {
		if prev, err := s.store.GetResume(ctx, resume.UserID); err == nil {
			resume.ATSScore = prev.ATSScore
			resume.Feedback = prev.Feedback
		}
	}

	if err := s.store.SaveResume(ctx, resume); err != nil {
		return cpErrors.NewStorageError(cpErrors.ErrCodeStorageFailed, "Failed to save resume", err)
	}
	return nil
}

// Get returns the user's stored resume.
func (s *Service) Get(ctx context.Context, userID string) (types.Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return types.Resume{}, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "userId is required", nil)
	}

	resume, err := s.store.GetResume(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.Resume{}, cpErrors.NewStorageError(cpErrors.ErrCodeNotFound, "No resume stored for user", err)
		}
		return types.Resume{}, cpErrors.NewStorageError(cpErrors.ErrCodeStorageFailed, "Failed to load resume", err)
	}
	return resume, nil
}

// AnalyzeATS runs the full ATS analysis and records the resulting score and
// feedback on the stored resume when one exists.
func (s *Service) AnalyzeATS(ctx context.Context, userID string, input types.AnalyzeResumeInput) (types.ATSAnalysis, error) {
	tracer := otel.Tracer("careerpilot.resume")
	ctx, span := tracer.Start(ctx, "resume.analyze_ats")
	defer span.End()

	if err := validateResumeInput(input.ResumeText, input.Industry); err != nil {
		return types.ATSAnalysis{}, err
	}
	span.SetAttributes(
		attribute.String("resume.industry", input.Industry),
		attribute.Int("resume.length", len(input.ResumeText)),
	)

	analysis, _, err := s.provider.AnalyzeResumeATS(ctx, input)
	if err != nil {
		span.RecordError(err)
		return types.ATSAnalysis{}, err
	}
	span.SetAttributes(attribute.Int("resume.ats_score", analysis.ATSScore))

	if userID != "" {
		s.recordAnalysis(ctx, userID, input.ResumeText, analysis)
	}
	return analysis, nil
}

// recordAnalysis persists the score alongside the analyzed content. A
// storage failure here only loses the cached score, so it is logged and
// swallowed.
func (s *Service) recordAnalysis(ctx context.Context, userID, content string, analysis types.ATSAnalysis) {
	err := s.store.SaveResume(ctx, types.Resume{
		UserID:   userID,
		Content:  content,
		ATSScore: analysis.ATSScore,
		Feedback: analysis.Feedback,
	})
	if err != nil {
		s.logger.Warn("Failed to record ATS analysis on stored resume",
			"user_id", userID,
			"error", err.Error())
	}
}

// Improve rewrites one resume section with AI.
func (s *Service) Improve(ctx context.Context, input types.ImproveContentInput) (string, error) {
	if strings.TrimSpace(input.Current) == "" {
		return "", cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "current content is required", nil)
	}
	switch input.Type {
	case "summary", "experience", "project":
	default:
		return "", cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "type must be summary, experience or project", nil)
	}
	if input.Industry == "" {
		input.Industry = "technology"
	}

	improved, _, err := s.provider.ImproveContent(ctx, input)
	if err != nil {
		return "", err
	}
	return improved, nil
}

// GenerateCoverLetter produces and persists a cover letter for a job
// posting, grounded in the user's stored resume when none is supplied.
func (s *Service) GenerateCoverLetter(ctx context.Context, userID string, input types.CoverLetterInput) (types.CoverLetter, error) {
	if strings.TrimSpace(userID) == "" {
		return types.CoverLetter{}, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "userId is required", nil)
	}
	if strings.TrimSpace(input.CompanyName) == "" || strings.TrimSpace(input.JobTitle) == "" {
		return types.CoverLetter{}, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "companyName and jobTitle are required", nil)
	}

	if input.ResumeText == "" {
		if stored, err := s.store.GetResume(ctx, userID); err == nil {
			input.ResumeText = stored.Content
		}
	}

	content, _, err := s.provider.GenerateCoverLetter(ctx, input)
	if err != nil {
		return types.CoverLetter{}, err
	}

	letter := types.CoverLetter{
		UserID:         userID,
		CompanyName:    input.CompanyName,
		JobTitle:       input.JobTitle,
		JobDescription: input.JobDescription,
		Content:        content,
	}
	if err := s.store.CreateCoverLetter(ctx, &letter); err != nil {
		return types.CoverLetter{}, cpErrors.NewStorageError(cpErrors.ErrCodeStorageFailed, "Failed to store cover letter", err)
	}
	return letter, nil
}

// ListCoverLetters returns the user's cover letters, newest first.
func (s *Service) ListCoverLetters(ctx context.Context, userID string) ([]types.CoverLetter, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "userId is required", nil)
	}
	letters, err := s.store.ListCoverLetters(ctx, userID)
	if err != nil {
		return nil, cpErrors.NewStorageError(cpErrors.ErrCodeStorageFailed, "Failed to list cover letters", err)
	}
	return letters, nil
}

// DeleteCoverLetter removes one of the user's cover letters.
func (s *Service) DeleteCoverLetter(ctx context.Context, userID, id string) error {
	err := s.store.DeleteCoverLetter(ctx, userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return cpErrors.NewStorageError(cpErrors.ErrCodeNotFound, "Cover letter not found", err)
	}
	if err != nil {
		return cpErrors.NewStorageError(cpErrors.ErrCodeStorageFailed, "Failed to delete cover letter", err)
	}
	return nil
}

// GenerateQuestionSet analyzes a resume and pre-generates the interview
// question list. Generation failures fall back to a fixed question set so
// the interview can always start.
func (s *Service) GenerateQuestionSet(ctx context.Context, input types.QuestionSetInput) (types.QuestionSetOutput, error) {
	tracer := otel.Tracer("careerpilot.resume")
	ctx, span := tracer.Start(ctx, "resume.generate_question_set")
	defer span.End()

	if err := validateResumeInput(input.ResumeText, input.Industry); err != nil {
		return types.QuestionSetOutput{}, err
	}

	out, _, err := s.provider.GenerateQuestionSet(ctx, input)
	if err != nil || len(out.Questions) == 0 {
		if err != nil {
			s.logger.Warn("Question set generation failed, using fixed fallback",
				"industry", input.Industry,
				"error", err.Error())
			span.RecordError(err)
		}
		return types.QuestionSetOutput{
			Questions: fallbackQuestionSet(input.Industry),
			Analysis:  "Resume analysis unavailable.",
		}, nil
	}

	span.SetAttributes(attribute.Int("resume.questions", len(out.Questions)))
	return out, nil
}

// fallbackQuestionSet is the fixed list used when generation fails.
func fallbackQuestionSet(industry string) []string {
	return []string{
		"Please describe your technical experience with the main technologies mentioned in your resume.",
		"Tell me about a challenging project you worked on and how you resolved technical issues.",
		"How do you approach problem-solving when faced with complex technical challenges?",
		"What are your greatest strengths as a professional in the " + industry + " field?",
		"Describe a situation where you had to work with a difficult team member and how you handled it.",
		"What are your career goals in the " + industry + " industry?",
		"How do you stay updated with the latest trends in your field?",
	}
}

func validateResumeInput(resumeText, industry string) error {
	if strings.TrimSpace(industry) == "" {
		return cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "industry is required", nil)
	}
	if len(strings.TrimSpace(resumeText)) < minResumeLength {
		return cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "resume text is too short for accurate analysis", nil)
	}
	return nil
}
