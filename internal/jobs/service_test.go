package jobs

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careerpilot/internal/config"
	cpErrors "careerpilot/internal/errors"
)

var testLogger = cpErrors.NewLogger(slog.LevelError)

const jsearchBody = `{
	"status": "OK",
	"data": [
		{
			"job_id": "abc123",
			"job_title": "Go Developer",
			"employer_name": "Acme",
			"job_city": "Berlin",
			"job_description": "Build services in Go with Docker and Kubernetes on AWS.",
			"job_apply_link": "https://example.com/apply",
			"job_employment_type": "FULLTIME",
			"job_publisher": "LinkedIn",
			"job_min_salary": 70000,
			"job_max_salary": 90000,
			"job_salary_currency": "EUR"
		},
		{
			"job_id": "",
			"job_title": "",
			"employer_name": "",
			"job_description": "React and TypeScript role."
		}
	]
}`

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	return NewService(config.JobsConfig{
		APIKey:      "test-key",
		APIHost:     "jsearch.p.rapidapi.com",
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		CacheTTL:    time.Minute,
		JobsPerPage: 9,
	}, testLogger)
}

func TestSearchMapsAPIResponse(t *testing.T) {
	var gotKey, gotHost, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(jsearchBody))
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	result, err := s.Search(context.Background(), SearchInput{
		SearchTerms: "golang",
		Location:    "Berlin",
		UserSkills:  []string{"docker", "aws"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotKey != "test-key" || gotHost != "jsearch.p.rapidapi.com" {
		t.Errorf("auth headers = %q/%q", gotKey, gotHost)
	}
	if gotQuery != "golang in Berlin" {
		t.Errorf("query = %q, want %q", gotQuery, "golang in Berlin")
	}

	if len(result.Jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(result.Jobs))
	}

	first := result.Jobs[0]
	if first.ID != "abc123" || first.Title != "Go Developer" || first.Company != "Acme" {
		t.Errorf("mapped job = %+v", first)
	}
	if first.Salary != "70000 - 90000 EUR" {
		t.Errorf("salary = %q", first.Salary)
	}
	if first.IsDemoData {
		t.Error("API result flagged as demo data")
	}
	if first.MatchPercentage == 0 {
		t.Error("skill match not computed")
	}
	if len(first.JobSkills) == 0 {
		t.Error("job skills not extracted from description")
	}

	second := result.Jobs[1]
	if second.Title != "Untitled Position" || second.Company != "Unknown Company" {
		t.Errorf("defaults not applied: %+v", second)
	}
	if second.ID == "" {
		t.Error("missing job_id not replaced with a generated id")
	}
	if second.Salary != "Not specified" {
		t.Errorf("salary = %q, want Not specified", second.Salary)
	}
}

func TestSearchFallsBackToDemoJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	result, err := s.Search(context.Background(), SearchInput{SearchTerms: "developer"})
	if err != nil {
		t.Fatalf("Search() error = %v, API failures must degrade to demo data", err)
	}
	if len(result.Jobs) == 0 {
		t.Fatal("no demo jobs returned")
	}
	for _, job := range result.Jobs {
		if !job.IsDemoData {
			t.Errorf("job %q not flagged as demo data", job.Title)
		}
		if !strings.HasSuffix(job.Title, " (Demo)") {
			t.Errorf("job title %q missing demo suffix", job.Title)
		}
	}
}

func TestSearchDemoLocationFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	result, err := s.Search(context.Background(), SearchInput{Location: "Austin"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Jobs) != 1 {
		t.Fatalf("len(jobs) = %d, want 1 Austin listing", len(result.Jobs))
	}
	if !strings.Contains(result.Jobs[0].Location, "Austin") {
		t.Errorf("location filter ignored: %+v", result.Jobs[0])
	}
}

func TestSearchUsesCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(jsearchBody))
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL)
	in := SearchInput{SearchTerms: "golang", Location: "Berlin"}

	if _, err := s.Search(context.Background(), in); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if _, err := s.Search(context.Background(), in); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("upstream called %d times, want 1 (second search cached)", calls)
	}

	// Different page misses the cache.
	if _, err := s.Search(context.Background(), SearchInput{SearchTerms: "golang", Location: "Berlin", Page: 2}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("upstream called %d times, want 2 after page change", calls)
	}
}

func TestEnrichJobsPerUser(t *testing.T) {
	jobs := []struct {
		description string
		skills      []string
		wantMatch   bool
	}{
		{"React and Docker shop.", []string{"react", "docker"}, true},
		{"React and Docker shop.", nil, false},
	}

	for _, tt := range jobs {
		enriched := enrichJobs(demoJobs[:1], tt.skills)
		if got := enriched[0].MatchPercentage > 0; got != tt.wantMatch {
			t.Errorf("skills %v: match=%d, want >0=%v", tt.skills, enriched[0].MatchPercentage, tt.wantMatch)
		}
	}
}
