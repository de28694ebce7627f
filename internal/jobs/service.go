package jobs

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"careerpilot/internal/config"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/types"
)

// SearchInput carries one job search request.
type SearchInput struct {
	SearchTerms string
	Location    string
	UserSkills  []string
	Page        int
}

type cacheEntry struct {
	jobs      []types.Job
	totalJobs int
	fetchedAt time.Time
}

// Service searches job listings through the JSearch API, enriches them
// with skill matching, and degrades to bundled demo listings when the API
// is unavailable. Responses are cached per query for a short window since
// listings churn slowly and the API is rate limited.
type Service struct {
	cfg        config.JobsConfig
	httpClient *http.Client
	logger     *cpErrors.Logger

	mu    sync.Mutex
	cache map[string]*cacheEntry
}

// NewService creates a job search service. The HTTP client carries OTel
// transport instrumentation so upstream latency shows up in traces.
func NewService(cfg config.JobsConfig, logger *cpErrors.Logger) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://jsearch.p.rapidapi.com"
	}
	if cfg.APIHost == "" {
		cfg.APIHost = "jsearch.p.rapidapi.com"
	}
	if cfg.JobsPerPage <= 0 {
		cfg.JobsPerPage = 9
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
		cache:  make(map[string]*cacheEntry),
	}
}

// Search returns one page of enriched job listings. API failures fall back
// to demo listings rather than erroring; a search result is always produced.
func (s *Service) Search(ctx context.Context, input SearchInput) (types.JobSearchResult, error) {
	tracer := otel.Tracer("careerpilot.jobs")
	ctx, span := tracer.Start(ctx, "jobs.search")
	defer span.End()

	page := input.Page
	if page <= 0 {
		page = 1
	}
	span.SetAttributes(
		attribute.String("jobs.search_terms", input.SearchTerms),
		attribute.String("jobs.location", input.Location),
		attribute.Int("jobs.page", page),
	)

	key := cacheKey(input.SearchTerms, input.Location, page)
	if entry := s.cachedEntry(key); entry != nil {
		span.SetAttributes(attribute.Bool("jobs.cache_hit", true))
		return types.JobSearchResult{
			Jobs:      enrichJobs(entry.jobs, input.UserSkills),
			TotalJobs: entry.totalJobs,
		}, nil
	}

	jobs, total, err := s.fetchFromAPI(ctx, input.SearchTerms, input.Location, page, s.cfg.JobsPerPage)
	if err != nil {
		s.logger.Warn("Job search API failed, serving demo listings",
			"search_terms", input.SearchTerms,
			"location", input.Location,
			"error", err.Error())
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("jobs.demo_data", true))

		demoPage, demoTotal := filterDemoJobs(input.SearchTerms, input.Location, page, s.cfg.JobsPerPage)
		return types.JobSearchResult{
			Jobs:      enrichJobs(demoPage, input.UserSkills),
			TotalJobs: demoTotal,
		}, nil
	}

	if len(jobs) > s.cfg.JobsPerPage {
		jobs = jobs[:s.cfg.JobsPerPage]
	}
	s.storeCache(key, jobs, total)

	span.SetAttributes(attribute.Int("jobs.results", len(jobs)))
	return types.JobSearchResult{
		Jobs:      enrichJobs(jobs, input.UserSkills),
		TotalJobs: total,
	}, nil
}

// enrichJobs attaches extracted skills and the user match score to each
// listing. Enrichment runs per request because it depends on user skills,
// while the cache holds the raw listings.
func enrichJobs(jobs []types.Job, userSkills []string) []types.Job {
	enriched := make([]types.Job, len(jobs))
	for i, job := range jobs {
		jobSkills := extractJobSkills(job.Description)
		common, missing, match := calculateSkillMatch(jobSkills, userSkills)
		job.JobSkills = jobSkills
		job.CommonSkills = common
		job.MissingSkills = missing
		job.MatchPercentage = match
		enriched[i] = job
	}
	return enriched
}

func cacheKey(searchTerms, location string, page int) string {
	return fmt.Sprintf("%s-%s-%d", searchTerms, location, page)
}

func (s *Service) cachedEntry(key string) *cacheEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[key]
	if !ok {
		return nil
	}
	if time.Since(entry.fetchedAt) >= s.cfg.CacheTTL {
		delete(s.cache, key)
		return nil
	}
	return entry
}

func (s *Service) storeCache(key string, jobs []types.Job, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop stale entries opportunistically; the key space is tiny.
	now := time.Now()
	for k, entry := range s.cache {
		if now.Sub(entry.fetchedAt) >= s.cfg.CacheTTL {
			delete(s.cache, k)
		}
	}

	s.cache[key] = &cacheEntry{jobs: jobs, totalJobs: total, fetchedAt: now}
}
