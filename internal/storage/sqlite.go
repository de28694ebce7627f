package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"careerpilot/internal/types"
)

// ErrNotFound is returned when a lookup key has no stored row.
var ErrNotFound = errors.New("storage: not found")

// SQLiteStore persists resumes, cover letters, saved jobs and cached
// industry insights. Session state deliberately does not live here; it
// belongs to the session store with its own TTL semantics.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		dbPath = filepath.Join("data", "careerpilot.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS resumes (
			user_id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			ats_score INTEGER NOT NULL DEFAULT 0,
			feedback TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("create resumes table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cover_letters (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			company_name TEXT NOT NULL,
			job_title TEXT NOT NULL,
			job_description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("create cover_letters table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS saved_jobs (
			user_id TEXT NOT NULL,
			job_id TEXT NOT NULL,
			job_json TEXT NOT NULL,
			saved_at TEXT NOT NULL,
			UNIQUE(user_id, job_id)
		);
	`); err != nil {
		return fmt.Errorf("create saved_jobs table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS industry_insights (
			industry TEXT PRIMARY KEY,
			insights_json TEXT NOT NULL,
			last_updated TEXT NOT NULL,
			next_update TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("create industry_insights table: %w", err)
	}

	if _, err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_cover_letters_user ON cover_letters(user_id, created_at)"); err != nil {
		return fmt.Errorf("create cover_letters index: %w", err)
	}
	if _, err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_saved_jobs_user ON saved_jobs(user_id, saved_at)"); err != nil {
		return fmt.Errorf("create saved_jobs index: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveResume stores or replaces the user's resume.
func (s *SQLiteStore) SaveResume(ctx context.Context, resume types.Resume) error {
	if strings.TrimSpace(resume.UserID) == "" {
		return errors.New("user id is required")
	}
	if resume.UpdatedAt.IsZero() {
		resume.UpdatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resumes(user_id, content, ats_score, feedback, updated_at) VALUES(?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET content = excluded.content, ats_score = excluded.ats_score,
		 feedback = excluded.feedback, updated_at = excluded.updated_at`,
		resume.UserID,
		resume.Content,
		resume.ATSScore,
		resume.Feedback,
		resume.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save resume for user %s: %w", resume.UserID, err)
	}
	return nil
}

// GetResume returns the user's stored resume or ErrNotFound.
func (s *SQLiteStore) GetResume(ctx context.Context, userID string) (types.Resume, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, content, ats_score, feedback, updated_at FROM resumes WHERE user_id = ?`,
		userID,
	)

	var resume types.Resume
	var updatedAt string
	if err := row.Scan(&resume.UserID, &resume.Content, &resume.ATSScore, &resume.Feedback, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Resume{}, ErrNotFound
		}
		return types.Resume{}, fmt.Errorf("query resume for user %s: %w", userID, err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return types.Resume{}, fmt.Errorf("parse resume updated_at for user %s: %w", userID, err)
	}
	resume.UpdatedAt = parsed

	return resume, nil
}

// CreateCoverLetter stores a generated cover letter, assigning an id and
// creation time when missing.
func (s *SQLiteStore) CreateCoverLetter(ctx context.Context, letter *types.CoverLetter) error {
	if strings.TrimSpace(letter.UserID) == "" {
		return errors.New("user id is required")
	}
	if letter.ID == "" {
		letter.ID = uuid.NewString()
	}
	if letter.CreatedAt.IsZero() {
		letter.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cover_letters(id, user_id, company_name, job_title, job_description, content, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`,
		letter.ID,
		letter.UserID,
		letter.CompanyName,
		letter.JobTitle,
		letter.JobDescription,
		letter.Content,
		letter.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create cover letter %s: %w", letter.ID, err)
	}
	return nil
}

// ListCoverLetters returns the user's cover letters, newest first.
func (s *SQLiteStore) ListCoverLetters(ctx context.Context, userID string) ([]types.CoverLetter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, company_name, job_title, job_description, content, created_at
		 FROM cover_letters
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cover letters for user %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	letters := make([]types.CoverLetter, 0, 8)
	for rows.Next() {
		var letter types.CoverLetter
		var createdAt string
		if err := rows.Scan(&letter.ID, &letter.UserID, &letter.CompanyName, &letter.JobTitle,
			&letter.JobDescription, &letter.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan cover letter: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse cover letter created_at: %w", err)
		}
		letter.CreatedAt = parsed
		letters = append(letters, letter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cover letter rows: %w", err)
	}

	return letters, nil
}

// DeleteCoverLetter removes one cover letter owned by the user.
func (s *SQLiteStore) DeleteCoverLetter(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cover_letters WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete cover letter %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cover letter rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveJob bookmarks a job for the user. Saving the same job twice
// refreshes the stored copy.
func (s *SQLiteStore) SaveJob(ctx context.Context, userID string, job types.Job) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(job.ID) == "" {
		return errors.New("job id is required")
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saved_jobs(user_id, job_id, job_json, saved_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(user_id, job_id) DO UPDATE SET job_json = excluded.job_json`,
		userID,
		job.ID,
		string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save job %s for user %s: %w", job.ID, userID, err)
	}
	return nil
}

// ListSavedJobs returns the user's bookmarked jobs, newest first.
func (s *SQLiteStore) ListSavedJobs(ctx context.Context, userID string) ([]types.SavedJob, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, job_json, saved_at FROM saved_jobs WHERE user_id = ? ORDER BY saved_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query saved jobs for user %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	saved := make([]types.SavedJob, 0, 8)
	for rows.Next() {
		var entry types.SavedJob
		var payload, savedAt string
		if err := rows.Scan(&entry.UserID, &payload, &savedAt); err != nil {
			return nil, fmt.Errorf("scan saved job: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &entry.Job); err != nil {
			return nil, fmt.Errorf("unmarshal saved job: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parse saved job saved_at: %w", err)
		}
		entry.SavedAt = parsed
		saved = append(saved, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved job rows: %w", err)
	}

	return saved, nil
}

// DeleteSavedJob removes one bookmark. Deleting an absent bookmark
// returns ErrNotFound.
func (s *SQLiteStore) DeleteSavedJob(ctx context.Context, userID, jobID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_jobs WHERE user_id = ? AND job_id = ?`, userID, jobID)
	if err != nil {
		return fmt.Errorf("delete saved job %s: %w", jobID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved job rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetInsights returns the cached insights for an industry or ErrNotFound.
func (s *SQLiteStore) GetInsights(ctx context.Context, industry string) (types.IndustryInsights, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT insights_json FROM industry_insights WHERE industry = ?`, industry)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.IndustryInsights{}, ErrNotFound
		}
		return types.IndustryInsights{}, fmt.Errorf("query insights for %s: %w", industry, err)
	}

	var insights types.IndustryInsights
	if err := json.Unmarshal([]byte(payload), &insights); err != nil {
		return types.IndustryInsights{}, fmt.Errorf("unmarshal insights for %s: %w", industry, err)
	}
	return insights, nil
}

// UpsertInsights stores the latest insights snapshot for an industry.
func (s *SQLiteStore) UpsertInsights(ctx context.Context, insights types.IndustryInsights) error {
	if strings.TrimSpace(insights.Industry) == "" {
		return errors.New("industry is required")
	}

	payload, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("marshal insights for %s: %w", insights.Industry, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO industry_insights(industry, insights_json, last_updated, next_update) VALUES(?, ?, ?, ?)
		 ON CONFLICT(industry) DO UPDATE SET insights_json = excluded.insights_json,
		 last_updated = excluded.last_updated, next_update = excluded.next_update`,
		insights.Industry,
		string(payload),
		insights.LastUpdated.UTC().Format(time.RFC3339Nano),
		insights.NextUpdate.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert insights for %s: %w", insights.Industry, err)
	}
	return nil
}
