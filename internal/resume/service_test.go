package resume

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"careerpilot/internal/ai"
	cpErrors "careerpilot/internal/errors"
	"careerpilot/internal/storage"
	"careerpilot/internal/types"
)

var testLogger = cpErrors.NewLogger(slog.LevelError)

const validResume = "Jane Doe. Senior Go developer with five years of experience building backend services."

// memStore is an in-memory Store for service tests.
type memStore struct {
	resumes map[string]types.Resume
	letters []types.CoverLetter
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{resumes: make(map[string]types.Resume)}
}

func (m *memStore) SaveResume(_ context.Context, r types.Resume) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.resumes[r.UserID] = r
	return nil
}

func (m *memStore) GetResume(_ context.Context, userID string) (types.Resume, error) {
	r, ok := m.resumes[userID]
	if !ok {
		return types.Resume{}, storage.ErrNotFound
	}
	return r, nil
}

func (m *memStore) CreateCoverLetter(_ context.Context, letter *types.CoverLetter) error {
	if letter.ID == "" {
		letter.ID = fmt.Sprintf("cl-%d", len(m.letters)+1)
	}
	m.letters = append(m.letters, *letter)
	return nil
}

func (m *memStore) ListCoverLetters(_ context.Context, userID string) ([]types.CoverLetter, error) {
	var out []types.CoverLetter
	for _, l := range m.letters {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) DeleteCoverLetter(_ context.Context, userID, id string) error {
	for i, l := range m.letters {
		if l.UserID == userID && l.ID == id {
			m.letters = append(m.letters[:i], m.letters[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// fakeProvider implements the subset of ai.AIProvider these tests exercise.
type fakeProvider struct {
	atsErr         error
	questionSetErr error
	coverLetterIn  types.CoverLetterInput
}

func (f *fakeProvider) GenerateFirstQuestion(context.Context, ai.QuestionInput) (string, *ai.TokenUsage, error) {
	return "", nil, fmt.Errorf("not used")
}

func (f *fakeProvider) GenerateNextQuestion(context.Context, ai.QuestionInput) (string, *ai.TokenUsage, error) {
	return "", nil, fmt.Errorf("not used")
}

func (f *fakeProvider) AnalyzeAnswer(context.Context, ai.AnalysisInput) (types.AnswerAnalysis, *ai.TokenUsage, error) {
	return types.AnswerAnalysis{}, nil, fmt.Errorf("not used")
}

func (f *fakeProvider) GenerateReport(context.Context, ai.ReportInput) (types.InterviewReport, *ai.TokenUsage, error) {
	return types.InterviewReport{}, nil, fmt.Errorf("not used")
}

func (f *fakeProvider) GenerateQuestionSet(_ context.Context, in types.QuestionSetInput) (types.QuestionSetOutput, *ai.TokenUsage, error) {
	if f.questionSetErr != nil {
		return types.QuestionSetOutput{}, nil, f.questionSetErr
	}
	return types.QuestionSetOutput{
		Questions: []string{
			"How did you scale the payment service you led?",
			"Which Go concurrency patterns did you apply there?",
		},
		Analysis: "Senior backend profile with Go focus.",
	}, nil, nil
}

func (f *fakeProvider) AnalyzeResumeATS(_ context.Context, in types.AnalyzeResumeInput) (types.ATSAnalysis, *ai.TokenUsage, error) {
	if f.atsErr != nil {
		return types.ATSAnalysis{}, nil, f.atsErr
	}
	return types.ATSAnalysis{
		ATSScore:     78,
		KeywordMatch: 65,
		Feedback:     "Solid structure, add more keywords.",
	}, nil, nil
}

func (f *fakeProvider) ImproveContent(_ context.Context, in types.ImproveContentInput) (string, *ai.TokenUsage, error) {
	return "Improved: " + in.Current, nil, nil
}

func (f *fakeProvider) GenerateCoverLetter(_ context.Context, in types.CoverLetterInput) (string, *ai.TokenUsage, error) {
	f.coverLetterIn = in
	return "Dear " + in.CompanyName + " team,", nil, nil
}

func (f *fakeProvider) GenerateIndustryInsights(context.Context, string) (types.IndustryInsights, *ai.TokenUsage, error) {
	return types.IndustryInsights{}, nil, fmt.Errorf("not used")
}

func (f *fakeProvider) GetModelInfo(context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func errCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*cpErrors.AppError)
	if !ok {
		t.Fatalf("error %v is not an AppError", err)
	}
	return appErr.Code
}

func TestSaveAndGet(t *testing.T) {
	store := newMemStore()
	s := NewService(store, &fakeProvider{}, testLogger)
	ctx := context.Background()

	if err := s.Save(ctx, types.Resume{UserID: "u1", Content: validResume}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Content != validResume {
		t.Errorf("content = %q", got.Content)
	}
}

func TestSavePreservesExistingScore(t *testing.T) {
	store := newMemStore()
	store.resumes["u1"] = types.Resume{UserID: "u1", Content: "old", ATSScore: 80, Feedback: "good"}
	s := NewService(store, &fakeProvider{}, testLogger)

	if err := s.Save(context.Background(), types.Resume{UserID: "u1", Content: validResume}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := store.resumes["u1"]
	if got.ATSScore != 80 || got.Feedback != "good" {
		t.Errorf("score not carried over: %+v", got)
	}
}

func TestGetMissingResume(t *testing.T) {
	s := NewService(newMemStore(), &fakeProvider{}, testLogger)

	_, err := s.Get(context.Background(), "nobody")
	if err == nil {
		t.Fatal("Get(absent) should fail")
	}
	if code := errCode(t, err); code != cpErrors.ErrCodeNotFound {
		t.Errorf("error code = %s, want %s", code, cpErrors.ErrCodeNotFound)
	}
}

func TestAnalyzeATSValidation(t *testing.T) {
	s := NewService(newMemStore(), &fakeProvider{}, testLogger)
	ctx := context.Background()

	tests := []struct {
		name  string
		input types.AnalyzeResumeInput
	}{
		{"missing industry", types.AnalyzeResumeInput{ResumeText: validResume}},
		{"short resume", types.AnalyzeResumeInput{ResumeText: "too short", Industry: "Technology"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AnalyzeATS(ctx, "u1", tt.input)
			if err == nil {
				t.Fatal("AnalyzeATS() should fail")
			}
			if code := errCode(t, err); code != cpErrors.ErrCodeValidation {
				t.Errorf("error code = %s, want %s", code, cpErrors.ErrCodeValidation)
			}
		})
	}
}

func TestAnalyzeATSRecordsScore(t *testing.T) {
	store := newMemStore()
	s := NewService(store, &fakeProvider{}, testLogger)

	analysis, err := s.AnalyzeATS(context.Background(), "u1", types.AnalyzeResumeInput{
		ResumeText: validResume,
		Industry:   "Technology",
	})
	if err != nil {
		t.Fatalf("AnalyzeATS() error = %v", err)
	}
	if analysis.ATSScore != 78 {
		t.Errorf("atsScore = %d, want 78", analysis.ATSScore)
	}

	stored := store.resumes["u1"]
	if stored.ATSScore != 78 || stored.Feedback == "" {
		t.Errorf("analysis not recorded on stored resume: %+v", stored)
	}
}

func TestImproveValidation(t *testing.T) {
	s := NewService(newMemStore(), &fakeProvider{}, testLogger)
	ctx := context.Background()

	if _, err := s.Improve(ctx, types.ImproveContentInput{Type: "summary"}); err == nil {
		t.Error("Improve without content should fail")
	}
	if _, err := s.Improve(ctx, types.ImproveContentInput{Current: "text", Type: "poem"}); err == nil {
		t.Error("Improve with unknown type should fail")
	}

	improved, err := s.Improve(ctx, types.ImproveContentInput{Current: "I write code", Type: "summary"})
	if err != nil {
		t.Fatalf("Improve() error = %v", err)
	}
	if !strings.HasPrefix(improved, "Improved:") {
		t.Errorf("improved = %q", improved)
	}
}

func TestGenerateCoverLetterUsesStoredResume(t *testing.T) {
	store := newMemStore()
	store.resumes["u1"] = types.Resume{UserID: "u1", Content: validResume}
	provider := &fakeProvider{}
	s := NewService(store, provider, testLogger)

	letter, err := s.GenerateCoverLetter(context.Background(), "u1", types.CoverLetterInput{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("GenerateCoverLetter() error = %v", err)
	}

	if provider.coverLetterIn.ResumeText != validResume {
		t.Error("stored resume not passed to generation")
	}
	if letter.ID == "" || letter.Content == "" {
		t.Errorf("letter not persisted: %+v", letter)
	}

	letters, err := s.ListCoverLetters(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListCoverLetters() error = %v", err)
	}
	if len(letters) != 1 {
		t.Fatalf("len(letters) = %d, want 1", len(letters))
	}
}

func TestGenerateCoverLetterValidation(t *testing.T) {
	s := NewService(newMemStore(), &fakeProvider{}, testLogger)

	_, err := s.GenerateCoverLetter(context.Background(), "u1", types.CoverLetterInput{CompanyName: "Acme"})
	if err == nil {
		t.Fatal("GenerateCoverLetter without jobTitle should fail")
	}
	if code := errCode(t, err); code != cpErrors.ErrCodeValidation {
		t.Errorf("error code = %s, want %s", code, cpErrors.ErrCodeValidation)
	}
}

func TestGenerateQuestionSet(t *testing.T) {
	s := NewService(newMemStore(), &fakeProvider{}, testLogger)

	out, err := s.GenerateQuestionSet(context.Background(), types.QuestionSetInput{
		ResumeText: validResume,
		Industry:   "Technology",
	})
	if err != nil {
		t.Fatalf("GenerateQuestionSet() error = %v", err)
	}
	if len(out.Questions) != 2 || out.Analysis == "" {
		t.Errorf("output = %+v", out)
	}
}

func TestGenerateQuestionSetFallback(t *testing.T) {
	provider := &fakeProvider{questionSetErr: fmt.Errorf("quota exceeded")}
	s := NewService(newMemStore(), provider, testLogger)

	out, err := s.GenerateQuestionSet(context.Background(), types.QuestionSetInput{
		ResumeText: validResume,
		Industry:   "Finance",
	})
	if err != nil {
		t.Fatalf("GenerateQuestionSet() error = %v, generation failures must fall back", err)
	}
	if len(out.Questions) != 7 {
		t.Fatalf("len(questions) = %d, want 7 fallback questions", len(out.Questions))
	}
	found := false
	for _, q := range out.Questions {
		if strings.Contains(q, "Finance") {
			found = true
		}
	}
	if !found {
		t.Error("fallback questions not parameterized by industry")
	}
}
