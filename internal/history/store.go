package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"reel/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear their history database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrJobNotFound indicates the requested job id does not exist.
var ErrJobNotFound = errors.New("job not found")

// Store manages job history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the history database under the log
// directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.LogDir, "history.db"))
}

// OpenPath opens the history database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'reel jobs clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

const timeFormat = time.RFC3339Nano

// Add records a new pending job and returns it.
func (s *Store) Add(ctx context.Context, command, input string) (*Job, error) {
	now := s.now().UTC()
	job := &Job{
		ID:        uuid.NewString(),
		Command:   strings.TrimSpace(command),
		Input:     strings.TrimSpace(input),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if job.Command == "" {
		return nil, fmt.Errorf("add job: command required")
	}

	_, err := s.execWithRetry(ctx,
		`INSERT INTO jobs (id, command, input, output_path, status, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, '', ?, '', ?, ?)`,
		job.ID, job.Command, job.Input, string(job.Status),
		now.Format(timeFormat), now.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("add job: %w", err)
	}
	return job, nil
}

// MarkRunning transitions a job to running.
func (s *Store) MarkRunning(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusRunning, "", "")
}

// MarkCompleted transitions a job to completed and records its output path.
func (s *Store) MarkCompleted(ctx context.Context, id, outputPath string) error {
	return s.setStatus(ctx, id, StatusCompleted, outputPath, "")
}

// MarkFailed transitions a job to failed with a reason.
func (s *Store) MarkFailed(ctx context.Context, id, message string) error {
	return s.setStatus(ctx, id, StatusFailed, "", message)
}

func (s *Store) setStatus(ctx context.Context, id string, status Status, outputPath, message string) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE jobs
		 SET status = ?,
		     output_path = CASE WHEN ? != '' THEN ? ELSE output_path END,
		     error_message = ?,
		     updated_at = ?
		 WHERE id = ?`,
		string(status), outputPath, outputPath, message,
		s.now().UTC().Format(timeFormat), id,
	)
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update job %s: %w", id, ErrJobNotFound)
	}
	return nil
}

// Get returns one job by id.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, command, input, output_path, status, error_message, created_at, updated_at
		 FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	return job, err
}

// List returns the most recent jobs, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, command, input, output_path, status, error_message, created_at, updated_at
		 FROM jobs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Clear removes all history rows and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM jobs")
	if err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	return res.RowsAffected()
}

// Summary returns job counts per status.
func (s *Store) Summary(ctx context.Context) (map[Status]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM jobs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("summarize jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[Status]int, len(allStatuses))
	for _, status := range allStatuses {
		summary[status] = 0
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summary[Status(status)] = count
	}
	return summary, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*Job, error) {
	var job Job
	var status, createdAt, updatedAt string
	if err := row.Scan(&job.ID, &job.Command, &job.Input, &job.OutputPath,
		&status, &job.ErrorMessage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	job.Status = Status(status)
	if parsed, err := time.Parse(timeFormat, createdAt); err == nil {
		job.CreatedAt = parsed
	}
	if parsed, err := time.Parse(timeFormat, updatedAt); err == nil {
		job.UpdatedAt = parsed
	}
	return &job, nil
}
