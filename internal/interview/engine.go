package interview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"careerpilot/internal/ai"
	"careerpilot/internal/config"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/session"
	"careerpilot/internal/transcribe"
	"careerpilot/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Metrics receives engine-level events. Implementations must be safe for
// concurrent use; a nil Metrics disables recording.
type Metrics interface {
	RecordSessionStarted(ctx context.Context)
	RecordSessionCompleted(ctx context.Context, turns int)
	RecordFallback(ctx context.Context, kind string)
}

// Engine drives the interview state machine: one question per turn, per-turn
// analysis, and a final report. Generator and transcription failures never
// propagate out of its public operations; every failure degrades to a
// documented default so the interview always makes forward progress.
type Engine struct {
	store       session.Store
	provider    ai.AIProvider
	transcriber transcribe.Transcriber
	cfg         config.InterviewConfig
	logger      *cpErrors.Logger
	metrics     Metrics

	// Per-session locks serialize SubmitAnswer for a given session id.
	locks sync.Map
}

// New creates an interview engine. transcriber and metrics may be nil.
func New(store session.Store, provider ai.AIProvider, transcriber transcribe.Transcriber, cfg config.InterviewConfig, logger *cpErrors.Logger, metrics Metrics) *Engine {
	return &Engine{
		store:       store,
		provider:    provider,
		transcriber: transcriber,
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics,
	}
}

// StartSession creates a new interview session and returns its first question.
func (e *Engine) StartSession(ctx context.Context, input types.StartInterviewInput) (types.StartInterviewOutput, error) {
	tracer := otel.Tracer("careerpilot.interview")
	ctx, span := tracer.Start(ctx, "interview.start_session")
	defer span.End()

	if strings.TrimSpace(input.UserID) == "" {
		return types.StartInterviewOutput{}, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "userId is required", nil)
	}
	if strings.TrimSpace(input.Industry) == "" {
		return types.StartInterviewOutput{}, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "industry is required", nil)
	}

	span.SetAttributes(
		attribute.String("interview.industry", input.Industry),
		attribute.Bool("interview.custom_questions", len(input.CustomQuestions) > 0),
	)

	var first string
	if len(input.CustomQuestions) > 0 {
		first = input.CustomQuestions[0]
	} else {
		first = e.firstQuestion(ctx, input)
	}

	s := &session.Session{
		UserID:          input.UserID,
		Industry:        input.Industry,
		ResumeText:      input.ResumeText,
		CustomQuestions: input.CustomQuestions,
		Questions:       []string{first},
		Answers:         []string{},
		Analyses:        []types.TurnAnalysis{},
		QuestionCount:   1,
		State:           session.StateActive,
	}

	if err := e.store.Create(ctx, s); err != nil {
		span.RecordError(err)
		return types.StartInterviewOutput{}, cpErrors.NewInternalError(cpErrors.ErrCodeInternal, "Failed to store session", err)
	}

	if e.metrics != nil {
		e.metrics.RecordSessionStarted(ctx)
	}
	e.logger.Info("Interview session started",
		"session_id", s.ID,
		"user_id", s.UserID,
		"industry", s.Industry,
		"custom_questions", len(input.CustomQuestions))

	return types.StartInterviewOutput{SessionID: s.ID, Question: first}, nil
}

// SubmitAnswer processes one answer: transcript resolution, turn analysis,
// then either the next question or the final report. A turn either fully
// persists or leaves the stored session untouched.
func (e *Engine) SubmitAnswer(ctx context.Context, input types.SubmitAnswerInput) (types.SubmitAnswerOutput, error) {
	tracer := otel.Tracer("careerpilot.interview")
	ctx, span := tracer.Start(ctx, "interview.submit_answer")
	defer span.End()

	id := strings.TrimSpace(input.SessionID)
	if id == "" {
		return types.SubmitAnswerOutput{}, cpErrors.NewValidationError(cpErrors.ErrCodeValidation, "sessionId is required", nil)
	}

	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	s, err := e.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return types.SubmitAnswerOutput{}, cpErrors.NewSessionError(cpErrors.ErrCodeInvalidSession, "Session not found or expired", err)
		}
		span.RecordError(err)
		return types.SubmitAnswerOutput{}, cpErrors.NewInternalError(cpErrors.ErrCodeInternal, "Failed to load session", err)
	}

	if s.State == session.StateComplete {
		return types.SubmitAnswerOutput{}, cpErrors.NewSessionError(cpErrors.ErrCodeSessionComplete, "Interview is already complete", nil)
	}

	span.SetAttributes(
		attribute.String("interview.industry", s.Industry),
		attribute.Int("interview.turn", s.QuestionCount),
	)

	transcript := e.resolveTranscript(ctx, input)
	s.Answers = append(s.Answers, transcript)
	question := s.Questions[len(s.Answers)-1]

	analysis, _, err := e.provider.AnalyzeAnswer(ctx, ai.AnalysisInput{
		Industry: s.Industry,
		Question: question,
		Answer:   transcript,
	})
	if err != nil {
		e.logger.Warn("Answer analysis failed, using neutral default",
			"session_id", id,
			"turn", s.QuestionCount,
			"error", err.Error())
		e.recordFallback(ctx, "analysis")
		analysis = neutralAnalysis()
	}
	s.Analyses = append(s.Analyses, types.TurnAnalysis{
		Question:       question,
		Answer:         transcript,
		Technical:      analysis.TechnicalAccuracy,
		ProblemSolving: analysis.ProblemSolving,
		Clarity:        analysis.CommunicationClarity,
		Strength:       analysis.KeyStrength,
		Improvement:    analysis.TechnicalImprovement,
		FollowUp:       analysis.FollowUpQuestion,
	})

	out := types.SubmitAnswerOutput{Analysis: analysis, Transcript: transcript}

	if s.QuestionCount >= e.cfg.MaxTurns {
		report := e.finalReport(ctx, s)
		s.State = session.StateComplete
		s.Report = &report

		if err := e.persist(ctx, s); err != nil {
			return types.SubmitAnswerOutput{}, err
		}
		e.locks.Delete(id)

		if e.metrics != nil {
			e.metrics.RecordSessionCompleted(ctx, s.QuestionCount)
		}
		e.logger.Info("Interview session completed",
			"session_id", id,
			"turns", s.QuestionCount)

		out.IsComplete = true
		out.Report = s.Report
		return out, nil
	}

	next := e.nextQuestion(ctx, s, transcript, analysis)
	s.Questions = append(s.Questions, next)
	s.QuestionCount++

	if err := e.persist(ctx, s); err != nil {
		return types.SubmitAnswerOutput{}, err
	}

	out.NextQuestion = next
	return out, nil
}

// firstQuestion generates the opening question. An invalid question triggers
// one stricter retry; a generator error or a still-invalid retry falls back
// to the canonical opening question.
func (e *Engine) firstQuestion(ctx context.Context, input types.StartInterviewInput) string {
	qin := ai.QuestionInput{
		Industry:   input.Industry,
		ResumeText: input.ResumeText,
		TurnNumber: 1,
	}

	q, _, err := e.provider.GenerateFirstQuestion(ctx, qin)
	if err != nil {
		e.logger.Warn("First question generation failed, using canonical fallback",
			"industry", input.Industry,
			"error", err.Error())
		e.recordFallback(ctx, "first_question")
		return FallbackFirstQuestion
	}
	if validQuestion(q, 150) {
		return q
	}

	qin.Strict = true
	q, _, err = e.provider.GenerateFirstQuestion(ctx, qin)
	if err == nil && validQuestion(q, 100) {
		return q
	}

	e.logger.Warn("First question failed validation twice, using canonical fallback",
		"industry", input.Industry)
	e.recordFallback(ctx, "first_question")
	return FallbackFirstQuestion
}

// nextQuestion picks the next question: backlog first, then generation with
// a one-shot duplicate-regeneration guard, then the analysis follow-up.
func (e *Engine) nextQuestion(ctx context.Context, s *session.Session, transcript string, analysis types.AnswerAnalysis) string {
	if len(s.CustomQuestions) > s.QuestionCount {
		return s.CustomQuestions[s.QuestionCount]
	}

	qin := ai.QuestionInput{
		Industry:     s.Industry,
		ResumeText:   s.ResumeText,
		PrevQuestion: s.Questions[len(s.Questions)-1],
		PrevAnswer:   transcript,
		AskedSoFar:   s.Questions,
		TurnNumber:   s.QuestionCount + 1,
	}

	q, _, err := e.provider.GenerateNextQuestion(ctx, qin)
	if err != nil {
		e.logger.Warn("Next question generation failed, using analysis follow-up",
			"session_id", s.ID,
			"error", err.Error())
		e.recordFallback(ctx, "next_question")
		return fallbackNextQuestion(analysis)
	}

	if tooSimilar(q, s.Questions, e.cfg.SimilarityThreshold) {
		qin.AvoidQuestion = q
		regenerated, _, err := e.provider.GenerateNextQuestion(ctx, qin)
		if err == nil && !tooSimilar(regenerated, s.Questions, e.cfg.SimilarityThreshold) {
			return regenerated
		}
		e.logger.Warn("Regenerated question still too similar, using analysis follow-up",
			"session_id", s.ID)
		e.recordFallback(ctx, "next_question")
		return fallbackNextQuestion(analysis)
	}

	return q
}

// finalReport generates the closing report, falling back to the algorithmic
// report so completion always yields one.
func (e *Engine) finalReport(ctx context.Context, s *session.Session) types.InterviewReport {
	report, _, err := e.provider.GenerateReport(ctx, ai.ReportInput{
		Industry: s.Industry,
		Turns:    s.Analyses,
	})
	if err != nil {
		e.logger.Warn("Report generation failed, using algorithmic fallback",
			"session_id", s.ID,
			"error", err.Error())
		e.recordFallback(ctx, "report")
		return fallbackReport(s.Analyses)
	}
	return report
}

// resolveTranscript resolves the answer text: client transcript, then audio
// transcription, then the placeholder. Transcription failure never fails
// the turn.
func (e *Engine) resolveTranscript(ctx context.Context, input types.SubmitAnswerInput) string {
	if t := strings.TrimSpace(input.LiveTranscript); t != "" {
		return t
	}

	if len(input.Audio) > 0 && e.transcriber != nil {
		t, err := e.transcriber.Transcribe(ctx, input.Audio)
		if err != nil {
			e.logger.Warn("Transcription failed, using placeholder",
				"session_id", input.SessionID,
				"audio_bytes", len(input.Audio),
				"error", err.Error())
			e.recordFallback(ctx, "transcription")
		} else if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}

	return transcribe.PlaceholderTranscript
}

// persist writes the mutated session back to the store.
func (e *Engine) persist(ctx context.Context, s *session.Session) error {
	err := e.store.Update(ctx, s)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrVersionConflict):
		return cpErrors.NewSessionError(cpErrors.ErrCodeSessionConflict, "Concurrent answer submission detected, retry", err)
	case errors.Is(err, session.ErrNotFound):
		return cpErrors.NewSessionError(cpErrors.ErrCodeInvalidSession, "Session expired during processing", err)
	default:
		return cpErrors.NewInternalError(cpErrors.ErrCodeInternal, "Failed to store session", err)
	}
}

func (e *Engine) lockFor(id string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (e *Engine) recordFallback(ctx context.Context, kind string) {
	if e.metrics != nil {
		e.metrics.RecordFallback(ctx, kind)
	}
}

// validQuestion checks the question format constraints: it must actually be
// a question, fit the length limit, and not be a generic opener.
func validQuestion(q string, maxLen int) bool {
	q = strings.TrimSpace(q)
	if q == "" || len(q) > maxLen || !strings.Contains(q, "?") {
		return false
	}
	return !strings.Contains(strings.ToLower(q), "tell me about")
}

// fallbackNextQuestion reuses the analysis follow-up as the next question.
func fallbackNextQuestion(analysis types.AnswerAnalysis) string {
	if q := strings.TrimSpace(analysis.FollowUpQuestion); q != "" {
		return q
	}
	return neutralAnalysis().FollowUpQuestion
}
