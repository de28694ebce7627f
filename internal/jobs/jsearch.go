package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/types"
)

// indianCities triggers the country heuristic: JSearch needs a country
// code, and the original deployment's main non-US audience is India.
var indianCities = []string{"india", "delhi", "mumbai", "bangalore", "hyderabad", "chennai", "kolkata"}

type jsearchJob struct {
	JobID                  string   `json:"job_id"`
	JobTitle               string   `json:"job_title"`
	EmployerName           string   `json:"employer_name"`
	EmployerLogo           string   `json:"employer_logo"`
	JobCity                string   `json:"job_city"`
	JobCountry             string   `json:"job_country"`
	JobLocation            string   `json:"job_location"`
	JobDescription         string   `json:"job_description"`
	JobApplyLink           string   `json:"job_apply_link"`
	JobGoogleLink          string   `json:"job_google_link"`
	JobPostedAtDatetimeUTC string   `json:"job_posted_at_datetime_utc"`
	JobMinSalary           *float64 `json:"job_min_salary"`
	JobMaxSalary           *float64 `json:"job_max_salary"`
	JobSalaryCurrency      string   `json:"job_salary_currency"`
	JobEmploymentType      string   `json:"job_employment_type"`
	JobPublisher           string   `json:"job_publisher"`
	JobIsRemote            bool     `json:"job_is_remote"`
	JobRequiredSkills      []string `json:"job_required_skills"`
	JobBenefits            []string `json:"job_benefits"`
}

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
	Total  int          `json:"total"`
}

// buildQuery assembles the JSearch free-text query and country code. A
// recognized Indian city switches the country and pins ", India" onto the
// location so the query text and country code agree.
func buildQuery(searchTerms, location string) (query, country string) {
	query = searchTerms
	if query == "" {
		query = "software development"
	}

	country = "us"
	lowerLoc := strings.ToLower(location)
	for _, city := range indianCities {
		if strings.Contains(lowerLoc, city) {
			country = "in"
			if !strings.Contains(lowerLoc, "india") {
				location += ", India"
			}
			break
		}
	}

	if location != "" {
		query += " in " + location
	}
	return query, country
}

// fetchFromAPI performs one JSearch search call and maps the response to
// the internal job shape.
func (s *Service) fetchFromAPI(ctx context.Context, searchTerms, location string, page, pageSize int) ([]types.Job, int, error) {
	query, country := buildQuery(searchTerms, location)

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", "1")
	// Over-fetch so a page survives dropped malformed entries.
	params.Set("page_size", strconv.Itoa(pageSize*2))
	params.Set("country", country)
	params.Set("date_posted", "all")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, cpErrors.NewNetworkError(cpErrors.ErrCodeInvalidRequest, "Failed to build job search request", err)
	}
	req.Header.Set("X-RapidAPI-Key", s.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", s.cfg.APIHost)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, cpErrors.NewNetworkError(cpErrors.ErrCodeNetworkTimeout, "Job search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, cpErrors.NewNetworkError(cpErrors.ErrCodeNetworkTimeout,
			fmt.Sprintf("Job search API returned status %d", resp.StatusCode), nil).
			WithContext("body", string(body))
	}

	var parsed jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, 0, cpErrors.NewNetworkError(cpErrors.ErrCodeNetworkTimeout, "Failed to decode job search response", err)
	}

	jobs := make([]types.Job, 0, len(parsed.Data))
	for _, j := range parsed.Data {
		jobs = append(jobs, mapJSearchJob(j, country))
	}

	total := parsed.Total
	if total == 0 {
		// JSearch omits totals; estimate so pagination stays usable.
		total = len(jobs) * 5
	}
	if total < len(jobs) {
		total = len(jobs)
	}
	return jobs, total, nil
}

func mapJSearchJob(j jsearchJob, country string) types.Job {
	job := types.Job{
		ID:             j.JobID,
		Title:          j.JobTitle,
		Company:        j.EmployerName,
		Location:       firstNonEmpty(j.JobCity, j.JobCountry, j.JobLocation, "Remote"),
		Description:    j.JobDescription,
		URL:            firstNonEmpty(j.JobApplyLink, j.JobGoogleLink),
		DatePosted:     j.JobPostedAtDatetimeUTC,
		JobType:        firstNonEmpty(j.JobEmploymentType, "Full-time"),
		Source:         firstNonEmpty(j.JobPublisher, "JSearch"),
		CompanyLogo:    j.EmployerLogo,
		IsRemote:       j.JobIsRemote,
		Qualifications: j.JobRequiredSkills,
		Benefits:       j.JobBenefits,
		Country:        country,
	}
	if job.ID == "" {
		job.ID = "jsearch-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	if job.Title == "" {
		job.Title = "Untitled Position"
	}
	if job.Company == "" {
		job.Company = "Unknown Company"
	}
	if job.DatePosted == "" {
		job.DatePosted = time.Now().UTC().Format(time.RFC3339)
	}

	switch {
	case j.JobMinSalary != nil && j.JobMaxSalary != nil:
		currency := firstNonEmpty(j.JobSalaryCurrency, "USD")
		job.Salary = fmt.Sprintf("%.0f - %.0f %s", *j.JobMinSalary, *j.JobMaxSalary, currency)
	default:
		job.Salary = "Not specified"
	}
	return job
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
