package insights

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"careerpilot/internal/ai"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/storage"
	"careerpilot/internal/types"
)

var testLogger = cpErrors.NewLogger(slog.LevelError)

type memStore struct {
	insights map[string]types.IndustryInsights
	upserts  int
}

func newMemStore() *memStore {
	return &memStore{insights: make(map[string]types.IndustryInsights)}
}

func (m *memStore) GetInsights(_ context.Context, industry string) (types.IndustryInsights, error) {
	in, ok := m.insights[industry]
	if !ok {
		return types.IndustryInsights{}, storage.ErrNotFound
	}
	return in, nil
}

func (m *memStore) UpsertInsights(_ context.Context, in types.IndustryInsights) error {
	m.upserts++
	m.insights[in.Industry] = in
	return nil
}

type fakeProvider struct {
	ai.AIProvider

	err   error
	calls int
}

func (f *fakeProvider) GenerateIndustryInsights(_ context.Context, industry string) (types.IndustryInsights, *ai.TokenUsage, error) {
	f.calls++
	if f.err != nil {
		return types.IndustryInsights{}, nil, f.err
	}
	return types.IndustryInsights{
		GrowthRate:    5.2,
		DemandLevel:   "HIGH",
		TopSkills:     []string{"go", "kubernetes", "sql"},
		MarketOutlook: "POSITIVE",
		KeyTrends:     []string{"platform engineering"},
	}, nil, nil
}

func TestGetGeneratesAndCaches(t *testing.T) {
	store := newMemStore()
	provider := &fakeProvider{}
	s := NewService(store, provider, DefaultRefreshInterval, testLogger)

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	got, err := s.Get(context.Background(), "Technology")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Industry != "Technology" || got.DemandLevel != "HIGH" {
		t.Errorf("Get() = %+v", got)
	}
	if !got.LastUpdated.Equal(base) {
		t.Errorf("lastUpdated = %v, want %v", got.LastUpdated, base)
	}
	if !got.NextUpdate.Equal(base.Add(DefaultRefreshInterval)) {
		t.Errorf("nextUpdate = %v", got.NextUpdate)
	}
	if store.upserts != 1 {
		t.Errorf("upserts = %d, want 1", store.upserts)
	}

	// Within the refresh window the cached snapshot is served untouched.
	s.now = func() time.Time { return base.Add(time.Hour) }
	if _, err := s.Get(context.Background(), "Technology"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (second call cached)", provider.calls)
	}
}

func TestGetRegeneratesAfterWindow(t *testing.T) {
	store := newMemStore()
	provider := &fakeProvider{}
	s := NewService(store, provider, DefaultRefreshInterval, testLogger)

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if _, err := s.Get(context.Background(), "Technology"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	s.now = func() time.Time { return base.Add(DefaultRefreshInterval + time.Minute) }
	got, err := s.Get(context.Background(), "Technology")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 after window lapsed", provider.calls)
	}
	if !got.LastUpdated.Equal(base.Add(DefaultRefreshInterval + time.Minute)) {
		t.Errorf("lastUpdated not refreshed: %v", got.LastUpdated)
	}
}

func TestGetServesStaleOnGenerationFailure(t *testing.T) {
	store := newMemStore()
	stale := types.IndustryInsights{
		Industry:    "Technology",
		DemandLevel: "MEDIUM",
		LastUpdated: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		NextUpdate:  time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
	}
	store.insights["Technology"] = stale

	provider := &fakeProvider{err: fmt.Errorf("quota exceeded")}
	s := NewService(store, provider, DefaultRefreshInterval, testLogger)
	s.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }

	got, err := s.Get(context.Background(), "Technology")
	if err != nil {
		t.Fatalf("Get() error = %v, stale snapshot must be served", err)
	}
	if got.DemandLevel != "MEDIUM" {
		t.Errorf("Get() = %+v, want stale snapshot", got)
	}
}

func TestGetFailsWithoutCacheOrGenerator(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("quota exceeded")}
	s := NewService(newMemStore(), provider, DefaultRefreshInterval, testLogger)

	if _, err := s.Get(context.Background(), "Technology"); err == nil {
		t.Fatal("Get() should fail with no cache and a failing generator")
	}
}

func TestGetValidatesIndustry(t *testing.T) {
	s := NewService(newMemStore(), &fakeProvider{}, DefaultRefreshInterval, testLogger)

	_, err := s.Get(context.Background(), "   ")
	if err == nil {
		t.Fatal("Get() with blank industry should fail")
	}
	appErr, ok := err.(*cpErrors.AppError)
	if !ok || appErr.Code != cpErrors.ErrCodeValidation {
		t.Errorf("error = %v, want validation error", err)
	}
}
