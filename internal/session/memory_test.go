package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T, ttl time.Duration) *MemoryStore {
	t.Helper()
	store := NewMemoryStore(ttl)
	t.Cleanup(store.Close)
	return store
}

func TestMemoryStoreCreateAssignsIDAndVersion(t *testing.T) {
	store := newTestStore(t, time.Minute)

	s := &Session{
		UserID:        "u1",
		Industry:      "Technology",
		Questions:     []string{"What did you build last?"},
		QuestionCount: 1,
		State:         StateActive,
	}

	if err := store.Create(context.Background(), s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if s.Version != 1 {
		t.Errorf("Create() version = %d, want 1", s.Version)
	}
	if s.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}
}

func TestMemoryStoreGet(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	s := &Session{UserID: "u1", Industry: "Technology", State: StateActive}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != "u1" || got.Industry != "Technology" {
		t.Errorf("Get() = %+v, want stored session", got)
	}

	// Returned value must be a copy, not an alias into the store.
	got.Questions = append(got.Questions, "injected")
	again, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(again.Questions) != 0 {
		t.Errorf("stored session mutated through returned copy: %v", again.Questions)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := newTestStore(t, time.Minute)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := newTestStore(t, 10*time.Millisecond)
	ctx := context.Background()

	s := &Session{UserID: "u1", State: StateActive}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(expired) error = %v, want ErrNotFound", err)
	}
	if err := store.Update(ctx, s); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(expired) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	s := &Session{UserID: "u1", State: StateActive, QuestionCount: 1}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	s.Answers = append(s.Answers, "my answer")
	s.QuestionCount = 2
	if err := store.Update(ctx, s); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if s.Version != 2 {
		t.Errorf("Update() version = %d, want 2", s.Version)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.QuestionCount != 2 || len(got.Answers) != 1 {
		t.Errorf("Get() after update = %+v", got)
	}
}

func TestMemoryStoreUpdateStaleVersion(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	s := &Session{UserID: "u1", State: StateActive}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Two readers load the same version; only the first write wins.
	first, _ := store.Get(ctx, s.ID)
	second, _ := store.Get(ctx, s.ID)

	first.Answers = append(first.Answers, "a1")
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("first Update() error = %v", err)
	}

	second.Answers = append(second.Answers, "a2")
	if err := store.Update(ctx, second); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("stale Update() error = %v, want ErrVersionConflict", err)
	}

	got, _ := store.Get(ctx, s.ID)
	if len(got.Answers) != 1 || got.Answers[0] != "a1" {
		t.Errorf("stored answers = %v, want [a1]", got.Answers)
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	s := &Session{UserID: "u1", State: StateActive}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
}
