package jobs

import (
	"strings"

	"careerpilot/internal/types"
)

// demoJobs is the bundled listing set served when the search API is
// unreachable. Titles get a " (Demo)" suffix so the UI can flag them.
var demoJobs = []types.Job{
	{
		ID:          "demo-1",
		Title:       "Frontend Developer",
		Company:     "TechSolutions Inc.",
		Location:    "New York, NY",
		URL:         "https://example.com/job/1",
		Description: "We are looking for a skilled Frontend Developer with expertise in React, TypeScript, and Tailwind CSS. Knowledge of state management solutions like Redux is a plus.",
		JobType:     "Full-time",
		Source:      "Demo",
		Country:     "us",
	},
	{
		ID:          "demo-2",
		Title:       "Full Stack Engineer",
		Company:     "InnovateTech",
		Location:    "San Francisco, CA",
		URL:         "https://example.com/job/2",
		Description: "Build scalable web applications using Node.js, Express, MongoDB, and React. You'll develop RESTful APIs and frontend components. Experience with Docker, AWS, and CI/CD pipelines is highly desirable.",
		JobType:     "Full-time",
		Source:      "Demo",
		Country:     "us",
	},
	{
		ID:          "demo-3",
		Title:       "Backend Developer",
		Company:     "DataDriven Systems",
		Location:    "Austin, TX",
		URL:         "https://example.com/job/3",
		Description: "Looking for a backend developer with strong Python and Django skills. You'll work on high-performance APIs and database optimization. Experience with Postgres, Redis, and AWS is required.",
		JobType:     "Full-time",
		Source:      "Demo",
		Country:     "us",
	},
	{
		ID:          "demo-4",
		Title:       "DevOps Engineer",
		Company:     "CloudNative Solutions",
		Location:    "Remote",
		URL:         "https://example.com/job/4",
		Description: "We need a DevOps engineer with experience in Kubernetes, Docker, Terraform, and AWS/Azure. You'll own CI/CD pipelines and infrastructure as code. Knowledge of Prometheus and Grafana is required.",
		JobType:     "Full-time",
		Source:      "Demo",
		IsRemote:    true,
		Country:     "us",
	},
	{
		ID:          "demo-5",
		Title:       "Data Scientist",
		Company:     "AnalyticsAI",
		Location:    "Boston, MA",
		URL:         "https://example.com/job/5",
		Description: "Join our data science team to develop machine learning models and AI solutions. Strong experience with Python and data visualization is required, ideally with NLP or recommendation systems.",
		JobType:     "Full-time",
		Source:      "Demo",
		Country:     "us",
	},
	{
		ID:          "demo-6",
		Title:       "Mobile Developer",
		Company:     "AppWorks Studio",
		Location:    "Seattle, WA",
		URL:         "https://example.com/job/6",
		Description: "Develop cross-platform mobile applications with Flutter and native modules in Swift and Kotlin. Experience shipping Android and iOS apps to production is required.",
		JobType:     "Full-time",
		Source:      "Demo",
		Country:     "us",
	},
}

// filterDemoJobs applies the search filters to the bundled listings and
// returns the matching page plus the filtered total.
func filterDemoJobs(searchTerms, location string, page, jobsPerPage int) ([]types.Job, int) {
	filtered := make([]types.Job, 0, len(demoJobs))
	terms := strings.ToLower(searchTerms)
	loc := strings.ToLower(location)

	for _, job := range demoJobs {
		if terms != "" &&
			!strings.Contains(strings.ToLower(job.Title), terms) &&
			!strings.Contains(strings.ToLower(job.Company), terms) &&
			!strings.Contains(strings.ToLower(job.Description), terms) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(job.Location), loc) {
			continue
		}
		job.Title += " (Demo)"
		job.IsDemoData = true
		filtered = append(filtered, job)
	}

	start := (page - 1) * jobsPerPage
	if start >= len(filtered) {
		return []types.Job{}, len(filtered)
	}
	end := start + jobsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], len(filtered)
}
