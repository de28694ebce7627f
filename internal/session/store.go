package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"careerpilot/internal/types"
)

var (
	// ErrNotFound is returned when a session id does not resolve to a
	// live session. Expired sessions are indistinguishable from absent ones.
	ErrNotFound = errors.New("session not found")

	// ErrVersionConflict is returned when an update carries a stale version.
	ErrVersionConflict = errors.New("session version conflict")
)

// State describes the lifecycle phase of an interview session.
type State string

const (
	StateActive   State = "ACTIVE"
	StateComplete State = "COMPLETE"
)

// Session holds the full mutable state of one interview attempt.
type Session struct {
	ID         string `json:"sessionId"`
	UserID     string `json:"userId"`
	Industry   string `json:"industry"`
	ResumeText string `json:"resumeText"`

	// CustomQuestions is the pre-supplied question backlog. When present,
	// questions are drawn from it instead of being generated.
	CustomQuestions []string `json:"customQuestions,omitempty"`

	Questions     []string               `json:"questions"`
	Answers       []string               `json:"answers"`
	Analyses      []types.TurnAnalysis   `json:"answerAnalyses"`
	QuestionCount int                    `json:"questionCount"`
	State         State                  `json:"state"`
	Report        *types.InterviewReport `json:"report,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`

	// Version increments on every successful update. Updates carrying a
	// stale version fail with ErrVersionConflict.
	Version int64 `json:"version"`
}

// Clone returns a deep copy so callers can mutate freely.
func (s *Session) Clone() *Session {
	c := *s
	c.CustomQuestions = append([]string(nil), s.CustomQuestions...)
	c.Questions = append([]string(nil), s.Questions...)
	c.Answers = append([]string(nil), s.Answers...)
	c.Analyses = append([]types.TurnAnalysis(nil), s.Analyses...)
	if s.Report != nil {
		r := *s.Report
		r.ArchitectureStrengths = append([]string(nil), s.Report.ArchitectureStrengths...)
		r.TechnicalImprovements = append([]string(nil), s.Report.TechnicalImprovements...)
		r.LearningPath = append([]string(nil), s.Report.LearningPath...)
		c.Report = &r
	}
	return &c
}

// NewID generates a fresh opaque session identifier.
func NewID() string {
	return uuid.NewString()
}

// Store is the per-session key-value state store. Implementations must
// honor expiry and provide single-key atomicity; Update must reject
// writes whose Version no longer matches the stored one.
type Store interface {
	// Create stores a new session. An ID is assigned when missing.
	Create(ctx context.Context, s *Session) error

	// Get returns the session or ErrNotFound if absent or expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces the stored session after a version check and
	// bumps the version. Returns ErrNotFound or ErrVersionConflict.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, id string) error
}
