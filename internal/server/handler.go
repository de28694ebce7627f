package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"careerpilot/internal/observability"
	"careerpilot/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createStartInterviewHandler wraps the interview start handler with observability
func (s *Server) createStartInterviewHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpilot.api")
		ctx, span := tracer.Start(ctx, "api.interview.start")
		defer span.End()

		var req types.StartInterviewInput
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("interview.industry", req.Industry),
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.custom_questions", len(req.CustomQuestions)),
		)

		metrics := om.GetMetrics()
		var result types.StartInterviewOutput
		err := metrics.TrackAIOperationWithTokens(ctx, "interview_start", func(ctx context.Context) *observability.AIOperationResult {
			output, startErr := s.engine.StartSession(ctx, req)
			result = output
			return &observability.AIOperationResult{Error: startErr}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "interview"))
			writeAppError(w, err, s.Logger)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("interview.session_id", result.SessionID),
		)

		writeJSONResponse(w, result)
	}
}

// createSubmitAnswerHandler wraps the answer submission handler with observability.
// The endpoint accepts either a JSON body or a multipart form with an
// audio upload; the multipart path is limited by the audio size cap.
func (s *Server) createSubmitAnswerHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpilot.api")
		ctx, span := tracer.Start(ctx, "api.interview.answer")
		defer span.End()

		req, err := s.parseAnswerRequest(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("interview.session_id", req.SessionID),
			attribute.Bool("request.has_audio", len(req.Audio) > 0),
			attribute.Int("request.transcript_length", len(req.LiveTranscript)),
		)

		metrics := om.GetMetrics()
		var result types.SubmitAnswerOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "interview_answer", func(ctx context.Context) *observability.AIOperationResult {
			output, submitErr := s.engine.SubmitAnswer(ctx, req)
			result = output
			return &observability.AIOperationResult{Error: submitErr}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "interview"))
			writeAppError(w, err, s.Logger)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("interview.complete", result.IsComplete),
		)

		writeJSONResponse(w, result)
	}
}

// parseAnswerRequest decodes an answer submission from either encoding
func (s *Server) parseAnswerRequest(r *http.Request) (types.SubmitAnswerInput, error) {
	var req types.SubmitAnswerInput

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := parseJSONRequest(r, &req); err != nil {
			return req, err
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(s.MaxAudioSize); err != nil {
		return req, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	req.SessionID = r.FormValue("sessionId")
	req.LiveTranscript = r.FormValue("liveTranscript")

	file, _, err := r.FormFile("audio")
	if err == http.ErrMissingFile {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("failed to read audio upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	audio, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("failed to read audio upload: %w", err)
	}
	req.Audio = audio

	return req, nil
}

// createQuestionSetHandler wraps the question pre-generation handler with observability
func (s *Server) createQuestionSetHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpilot.api")
		ctx, span := tracer.Start(ctx, "api.interview.questions")
		defer span.End()

		var req types.QuestionSetInput
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("interview.industry", req.Industry),
			attribute.Int("request.resume_length", len(req.ResumeText)),
		)

		metrics := om.GetMetrics()
		var result types.QuestionSetOutput
		err := metrics.TrackAIOperationWithTokens(ctx, "question_set", func(ctx context.Context) *observability.AIOperationResult {
			output, genErr := s.resumeSvc.GenerateQuestionSet(ctx, req)
			result = output
			return &observability.AIOperationResult{Error: genErr}
		})

		if err != nil {
			span.RecordError(err)
			writeAppError(w, err, s.Logger)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.question_count", len(result.Questions)),
		)

		writeJSONResponse(w, result)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSONResponse encodes a successful JSON response
func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
