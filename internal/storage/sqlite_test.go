package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"careerpilot/internal/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestResumeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetResume(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetResume(absent) error = %v, want ErrNotFound", err)
	}

	resume := types.Resume{
		UserID:   "u1",
		Content:  "# Jane Doe\nGo developer with five years of backend experience.",
		ATSScore: 72,
		Feedback: "Add more quantified outcomes.",
	}
	if err := store.SaveResume(ctx, resume); err != nil {
		t.Fatalf("SaveResume() error = %v", err)
	}

	got, err := store.GetResume(ctx, "u1")
	if err != nil {
		t.Fatalf("GetResume() error = %v", err)
	}
	if got.Content != resume.Content || got.ATSScore != 72 || got.Feedback != resume.Feedback {
		t.Errorf("GetResume() = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set on save")
	}

	// Saving again replaces the stored resume.
	resume.Content = "updated"
	resume.ATSScore = 85
	if err := store.SaveResume(ctx, resume); err != nil {
		t.Fatalf("SaveResume(update) error = %v", err)
	}
	got, err = store.GetResume(ctx, "u1")
	if err != nil {
		t.Fatalf("GetResume() error = %v", err)
	}
	if got.Content != "updated" || got.ATSScore != 85 {
		t.Errorf("resume not replaced: %+v", got)
	}
}

func TestSaveResumeRequiresUserID(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveResume(context.Background(), types.Resume{Content: "x"}); err == nil {
		t.Error("SaveResume without user id should fail")
	}
}

func TestCoverLetterLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &types.CoverLetter{
		UserID:      "u1",
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		Content:     "Dear hiring manager,",
		CreatedAt:   time.Now().Add(-time.Hour),
	}
	second := &types.CoverLetter{
		UserID:      "u1",
		CompanyName: "Globex",
		JobTitle:    "Platform Engineer",
		Content:     "Dear team,",
	}

	if err := store.CreateCoverLetter(ctx, first); err != nil {
		t.Fatalf("CreateCoverLetter() error = %v", err)
	}
	if err := store.CreateCoverLetter(ctx, second); err != nil {
		t.Fatalf("CreateCoverLetter() error = %v", err)
	}
	if first.ID == "" || second.ID == "" {
		t.Fatal("ids not assigned")
	}

	letters, err := store.ListCoverLetters(ctx, "u1")
	if err != nil {
		t.Fatalf("ListCoverLetters() error = %v", err)
	}
	if len(letters) != 2 {
		t.Fatalf("len(letters) = %d, want 2", len(letters))
	}
	if letters[0].CompanyName != "Globex" {
		t.Errorf("letters not newest-first: %+v", letters[0])
	}

	other, err := store.ListCoverLetters(ctx, "u2")
	if err != nil {
		t.Fatalf("ListCoverLetters(u2) error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("user isolation broken: %+v", other)
	}

	if err := store.DeleteCoverLetter(ctx, "u1", first.ID); err != nil {
		t.Fatalf("DeleteCoverLetter() error = %v", err)
	}
	if err := store.DeleteCoverLetter(ctx, "u1", first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSavedJobs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := types.Job{
		ID:          "job-1",
		Title:       "Go Developer",
		Company:     "Acme",
		Description: "Build services in Go.",
		JobSkills:   []string{"docker", "aws"},
	}
	if err := store.SaveJob(ctx, "u1", job); err != nil {
		t.Fatalf("SaveJob() error = %v", err)
	}

	// Saving again is an update, not a duplicate.
	job.Title = "Senior Go Developer"
	if err := store.SaveJob(ctx, "u1", job); err != nil {
		t.Fatalf("SaveJob(again) error = %v", err)
	}

	saved, err := store.ListSavedJobs(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSavedJobs() error = %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("len(saved) = %d, want 1", len(saved))
	}
	if saved[0].Job.Title != "Senior Go Developer" {
		t.Errorf("job not refreshed: %+v", saved[0].Job)
	}
	if len(saved[0].Job.JobSkills) != 2 {
		t.Errorf("job payload lost fields: %+v", saved[0].Job)
	}

	if err := store.DeleteSavedJob(ctx, "u1", "job-1"); err != nil {
		t.Fatalf("DeleteSavedJob() error = %v", err)
	}
	if err := store.DeleteSavedJob(ctx, "u1", "job-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestInsightsUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetInsights(ctx, "Technology"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetInsights(absent) error = %v, want ErrNotFound", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	insights := types.IndustryInsights{
		Industry:      "Technology",
		GrowthRate:    6.5,
		DemandLevel:   "HIGH",
		TopSkills:     []string{"go", "kubernetes"},
		MarketOutlook: "POSITIVE",
		LastUpdated:   now,
		NextUpdate:    now.Add(7 * 24 * time.Hour),
	}
	if err := store.UpsertInsights(ctx, insights); err != nil {
		t.Fatalf("UpsertInsights() error = %v", err)
	}

	got, err := store.GetInsights(ctx, "Technology")
	if err != nil {
		t.Fatalf("GetInsights() error = %v", err)
	}
	if got.DemandLevel != "HIGH" || len(got.TopSkills) != 2 {
		t.Errorf("GetInsights() = %+v", got)
	}

	insights.DemandLevel = "MEDIUM"
	if err := store.UpsertInsights(ctx, insights); err != nil {
		t.Fatalf("UpsertInsights(update) error = %v", err)
	}
	got, err = store.GetInsights(ctx, "Technology")
	if err != nil {
		t.Fatalf("GetInsights() error = %v", err)
	}
	if got.DemandLevel != "MEDIUM" {
		t.Errorf("insights not replaced: %+v", got)
	}
}
