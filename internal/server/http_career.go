package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"careerpilot/internal/jobs"
	"careerpilot/internal/observability"
	"careerpilot/internal/storage"
	"careerpilot/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// saveResumeHandler stores or replaces the caller's resume
func (s *Server) saveResumeHandler(w http.ResponseWriter, r *http.Request) {
	var req SaveResumeRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	err := s.resumeSvc.Save(r.Context(), types.Resume{
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, map[string]any{"saved": true})
}

// getResumeHandler returns the stored resume with its latest ATS analysis
func (s *Server) getResumeHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeErrorResponse(w, "VALIDATION_ERROR", "userId query parameter is required", http.StatusBadRequest)
		return
	}

	resume, err := s.resumeSvc.Get(r.Context(), userID)
	if err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, resume)
}

// createAnalyzeResumeHandler wraps the ATS analysis handler with observability
func (s *Server) createAnalyzeResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpilot.api")
		ctx, span := tracer.Start(ctx, "api.resume.analyze")
		defer span.End()

		var req AnalyzeResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("resume.industry", req.Industry),
		)

		metrics := om.GetMetrics()
		var result types.ATSAnalysis
		err := metrics.TrackAIOperationWithTokens(ctx, "resume_analyze", func(ctx context.Context) *observability.AIOperationResult {
			analysis, aiErr := s.resumeSvc.AnalyzeATS(ctx, req.UserID, types.AnalyzeResumeInput{
				ResumeText: req.ResumeText,
				Industry:   req.Industry,
			})
			result = analysis
			return &observability.AIOperationResult{Error: aiErr}
		})

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false)
			writeAppError(w, err, s.Logger)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true,
			attribute.Int("ats.score", result.ATSScore),
			attribute.Int("ats.keyword_match", result.KeywordMatch))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.ATSScore),
		)

		writeJSONResponse(w, result)
	}
}

// improveResumeHandler rewrites one resume section with AI assistance
func (s *Server) improveResumeHandler(w http.ResponseWriter, r *http.Request) {
	var req types.ImproveContentInput
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	improved, err := s.resumeSvc.Improve(r.Context(), req)
	if err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, map[string]string{"content": improved})
}

// createCoverLetterHandler wraps cover letter generation with observability
func (s *Server) createCoverLetterHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpilot.api")
		ctx, span := tracer.Start(ctx, "api.cover_letter.generate")
		defer span.End()

		var req CoverLetterRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("cover_letter.company", req.CompanyName),
			attribute.String("cover_letter.job_title", req.JobTitle),
		)

		metrics := om.GetMetrics()
		var letter types.CoverLetter
		err := metrics.TrackAIOperationWithTokens(ctx, "cover_letter", func(ctx context.Context) *observability.AIOperationResult {
			generated, aiErr := s.resumeSvc.GenerateCoverLetter(ctx, req.UserID, types.CoverLetterInput{
				CompanyName:    req.CompanyName,
				JobTitle:       req.JobTitle,
				JobDescription: req.JobDescription,
				ResumeText:     req.ResumeText,
				Industry:       req.Industry,
			})
			letter = generated
			return &observability.AIOperationResult{Error: aiErr}
		})

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "cover_letter_generated", false)
			writeAppError(w, err, s.Logger)
			return
		}

		metrics.RecordBusinessMetric(ctx, "cover_letter_generated", true,
			attribute.Int("cover_letter.length", len(letter.Content)))

		span.SetAttributes(attribute.Bool("success", true))

		writeJSONResponse(w, letter)
	}
}

// listCoverLettersHandler returns the caller's stored cover letters
func (s *Server) listCoverLettersHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeErrorResponse(w, "VALIDATION_ERROR", "userId query parameter is required", http.StatusBadRequest)
		return
	}

	letters, err := s.resumeSvc.ListCoverLetters(r.Context(), userID)
	if err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, letters)
}

// deleteCoverLetterHandler removes one stored cover letter
func (s *Server) deleteCoverLetterHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	id := r.PathValue("id")
	if userID == "" || id == "" {
		writeErrorResponse(w, "VALIDATION_ERROR", "userId and cover letter id are required", http.StatusBadRequest)
		return
	}

	if err := s.resumeSvc.DeleteCoverLetter(r.Context(), userID, id); err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, map[string]any{"deleted": true})
}

// createJobSearchHandler wraps the job search handler with observability
func (s *Server) createJobSearchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerpilot.api")
		ctx, span := tracer.Start(ctx, "api.jobs.search")
		defer span.End()

		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		input := jobs.SearchInput{
			SearchTerms: q.Get("query"),
			Location:    q.Get("location"),
			Page:        page,
		}
		if skills := strings.TrimSpace(q.Get("skills")); skills != "" {
			for _, skill := range strings.Split(skills, ",") {
				if skill = strings.TrimSpace(skill); skill != "" {
					input.UserSkills = append(input.UserSkills, skill)
				}
			}
		}

		span.SetAttributes(
			attribute.String("jobs.query", input.SearchTerms),
			attribute.String("jobs.location", input.Location),
			attribute.Int("jobs.page", input.Page),
			attribute.Int("jobs.user_skills", len(input.UserSkills)),
		)

		result, err := s.jobsSvc.Search(ctx, input)
		if err != nil {
			span.RecordError(err)
			om.GetMetrics().RecordBusinessMetric(ctx, "job_search", false)
			writeAppError(w, err, s.Logger)
			return
		}

		om.GetMetrics().RecordBusinessMetric(ctx, "job_search", true,
			attribute.Int("jobs.result_count", len(result.Jobs)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("jobs.result_count", len(result.Jobs)),
		)

		writeJSONResponse(w, result)
	}
}

// saveJobHandler bookmarks a job listing for the caller
func (s *Server) saveJobHandler(w http.ResponseWriter, r *http.Request) {
	var req SaveJobRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Job.ID == "" {
		writeErrorResponse(w, "VALIDATION_ERROR", "userId and job.id are required", http.StatusBadRequest)
		return
	}

	if err := s.store.SaveJob(r.Context(), req.UserID, req.Job); err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, map[string]any{"saved": true})
}

// listSavedJobsHandler returns the caller's bookmarked jobs
func (s *Server) listSavedJobsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeErrorResponse(w, "VALIDATION_ERROR", "userId query parameter is required", http.StatusBadRequest)
		return
	}

	saved, err := s.store.ListSavedJobs(r.Context(), userID)
	if err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, saved)
}

// deleteSavedJobHandler removes a bookmarked job
func (s *Server) deleteSavedJobHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	jobID := r.PathValue("id")
	if userID == "" || jobID == "" {
		writeErrorResponse(w, "VALIDATION_ERROR", "userId and job id are required", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteSavedJob(r.Context(), userID, jobID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorResponse(w, "NOT_FOUND", "saved job not found", http.StatusNotFound)
			return
		}
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, map[string]any{"deleted": true})
}

// insightsHandler serves cached or freshly generated industry insights
func (s *Server) insightsHandler(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	if industry == "" {
		writeErrorResponse(w, "VALIDATION_ERROR", "industry query parameter is required", http.StatusBadRequest)
		return
	}

	insights, err := s.insightsSvc.Get(r.Context(), industry)
	if err != nil {
		writeAppError(w, err, s.Logger)
		return
	}

	writeJSONResponse(w, insights)
}
