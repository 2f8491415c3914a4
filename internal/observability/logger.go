// Package observability provides structured run logging for the join
// CLIs, adapted from the gateway's query logger. Every run emits: the
// strategy used, the two input sources, rows emitted, duration, and
// error (if any) — all to stderr, so stdout stays byte-clean for
// piping (spec.md §6.2's output contract).
package observability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// RunLogEntry contains the fields logged for one join-run invocation.
type RunLogEntry struct {
	// RunID identifies this invocation, e.g. a timestamp-derived token.
	RunID string

	// Mode names the join strategy and variant, e.g. "hash-inner",
	// "merge-left-outer".
	Mode string

	// LeftSource and RightSource are the two input file paths (or "-"
	// for stdin).
	LeftSource  string
	RightSource string

	// RowsEmitted counts output records written.
	RowsEmitted int64

	// Duration is how long the run took end to end.
	// Must be non-negative.
	Duration time.Duration

	// Error contains the error message if the run failed. Empty for
	// successful runs.
	Error string
}

// Validate checks that all required fields are present.
func (e *RunLogEntry) Validate() error {
	if e.RunID == "" {
		return fmt.Errorf("observability: run_id is required")
	}
	if e.Mode == "" {
		return fmt.Errorf("observability: mode is required")
	}
	if e.Duration < 0 {
		return fmt.Errorf("observability: duration cannot be negative")
	}
	return nil
}

// RunLogger is the interface for join-run logging.
type RunLogger interface {
	// LogRun logs one join-run's outcome. Returns an error if logging
	// fails or the entry is invalid.
	LogRun(ctx context.Context, entry RunLogEntry) error
}

// jsonLogOutput is the structured format for JSON logs.
type jsonLogOutput struct {
	Timestamp   string `json:"timestamp"`
	Level       string `json:"level"`
	RunID       string `json:"run_id"`
	Mode        string `json:"mode"`
	LeftSource  string `json:"left_source"`
	RightSource string `json:"right_source"`
	RowsEmitted int64  `json:"rows_emitted"`
	DurationMs  int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
}

// JSONLogger implements RunLogger with JSON-lines output, normally
// pointed at stderr.
type JSONLogger struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONLogger creates a new JSON logger writing to the given writer.
func NewJSONLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{writer: w}
}

// LogRun logs a join-run outcome as one JSON line.
func (l *JSONLogger) LogRun(ctx context.Context, entry RunLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	level := "info"
	if entry.Error != "" {
		level = "error"
	}

	output := jsonLogOutput{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Level:       level,
		RunID:       entry.RunID,
		Mode:        entry.Mode,
		LeftSource:  entry.LeftSource,
		RightSource: entry.RightSource,
		RowsEmitted: entry.RowsEmitted,
		DurationMs:  entry.Duration.Milliseconds(),
		Error:       entry.Error,
	}

	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("observability: failed to marshal log: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("observability: failed to write log: %w", err)
	}
	return nil
}

// NoopLogger discards every entry. Used when logging is disabled.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// LogRun does nothing and always succeeds.
func (l *NoopLogger) LogRun(ctx context.Context, entry RunLogEntry) error {
	return nil
}

// PersistentLogger implements RunLogger with PostgreSQL persistence, so
// run history survives past the CLI process exiting — optional, wired
// only when --audit-dsn is set (see internal/joincli).
type PersistentLogger struct {
	db     *sql.DB
	writer io.Writer // optional: also write JSON lines, e.g. to stderr
}

// NewPersistentLogger creates a logger that persists run entries to PostgreSQL.
func NewPersistentLogger(db *sql.DB) (*PersistentLogger, error) {
	if db == nil {
		return nil, fmt.Errorf("observability: database connection is required for persistent logging")
	}
	return &PersistentLogger{
		db: db,
	}, nil
}

// NewPersistentLoggerWithWriter creates a logger that persists to both DB and a writer.
func NewPersistentLoggerWithWriter(db *sql.DB, w io.Writer) (*PersistentLogger, error) {
	if db == nil {
		return nil, fmt.Errorf("observability: database connection is required for persistent logging")
	}
	return &PersistentLogger{
		db:     db,
		writer: w,
	}, nil
}

// LogRun persists a join-run entry to PostgreSQL, into the join_runs
// table created by the auditlog.Runner migrations.
func (l *PersistentLogger) LogRun(ctx context.Context, entry RunLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO join_runs (
			run_id, mode, left_source, right_source, rows_emitted,
			duration_ms, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := l.db.ExecContext(ctx, query,
		entry.RunID,
		entry.Mode,
		entry.LeftSource,
		entry.RightSource,
		entry.RowsEmitted,
		entry.Duration.Milliseconds(),
		nullableString(entry.Error),
	)
	if err != nil {
		return fmt.Errorf("observability: failed to persist run log: %w", err)
	}

	if l.writer != nil {
		level := "info"
		if entry.Error != "" {
			level = "error"
		}
		output := jsonLogOutput{
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Level:       level,
			RunID:       entry.RunID,
			Mode:        entry.Mode,
			LeftSource:  entry.LeftSource,
			RightSource: entry.RightSource,
			RowsEmitted: entry.RowsEmitted,
			DurationMs:  entry.Duration.Milliseconds(),
			Error:       entry.Error,
		}
		if data, err := json.Marshal(output); err == nil {
			l.writer.Write(data)
			l.writer.Write([]byte("\n"))
		}
	}

	return nil
}

// nullableString converts empty strings to nil for SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
