package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"memo-whisper/internal/app/model"
)

// PlaceholderFunc generates parameter placeholders for a SQL dialect.
type PlaceholderFunc func(n int) string

// CommonDB implements TranscriptionDAO over database/sql for both supported
// dialects; only the placeholder style differs between them.
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

var _ TranscriptionDAO = (*CommonDB)(nil)

// NewCommonDB wraps an open database handle with dialect-aware queries.
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc
	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

func (c *CommonDB) Close() error {
	return c.db.Close()
}

// Record appends one per-file outcome to the ledger.
func (c *CommonDB) Record(t model.Transcription) error {
	params := make([]string, 11)
	for i := range params {
		params[i] = c.placeholders(i + 1)
	}

	query := fmt.Sprintf(
		`INSERT INTO transcriptions (
			run_id, input_dir, file_name, output_file, engine, model,
			audio_duration, transcription, has_error, error_message, created_at
		) VALUES (%s)`,
		strings.Join(params, ", "),
	)

	hasError := 0
	if t.HasError {
		hasError = 1
	}

	_, err := c.db.Exec(query,
		t.RunID, t.InputDir, t.FileName, t.OutputFile, t.Engine, t.Model,
		t.AudioDuration, t.Text, hasError, t.ErrorMessage, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transcription: %w", err)
	}
	return nil
}

const selectColumns = `id, run_id, input_dir, file_name, output_file, engine, model, audio_duration, transcription, has_error, error_message, created_at`

// GetRecent returns the newest ledger rows, most recent first.
func (c *CommonDB) GetRecent(limit int) ([]model.Transcription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM transcriptions ORDER BY created_at DESC, id DESC LIMIT %s`,
		selectColumns, c.placeholders(1),
	)

	rows, err := c.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return scanTranscriptions(rows)
}

// GetByInputDir returns the newest ledger rows recorded for one input
// directory.
func (c *CommonDB) GetByInputDir(inputDir string, limit int) ([]model.Transcription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM transcriptions WHERE input_dir = %s ORDER BY created_at DESC, id DESC LIMIT %s`,
		selectColumns, c.placeholders(1), c.placeholders(2),
	)

	rows, err := c.db.Query(query, inputDir, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return scanTranscriptions(rows)
}

// Search returns rows whose transcription text contains term.
func (c *CommonDB) Search(term string, limit int) ([]model.Transcription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM transcriptions WHERE transcription LIKE %s ORDER BY created_at DESC, id DESC LIMIT %s`,
		selectColumns, c.placeholders(1), c.placeholders(2),
	)

	rows, err := c.db.Query(query, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return scanTranscriptions(rows)
}

// Stats summarizes the whole ledger.
func (c *CommonDB) Stats() (model.LedgerStats, error) {
	var stats model.LedgerStats
	err := c.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(has_error), 0), COUNT(DISTINCT run_id) FROM transcriptions`,
	).Scan(&stats.Total, &stats.Errored, &stats.Runs)
	if err != nil {
		return model.LedgerStats{}, fmt.Errorf("query stats: %w", err)
	}

	var last time.Time
	err = c.db.QueryRow(
		`SELECT created_at FROM transcriptions ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&last)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return model.LedgerStats{}, fmt.Errorf("query last entry: %w", err)
	default:
		stats.LastEntry = &last
	}

	return stats, nil
}

func scanTranscriptions(rows *sql.Rows) ([]model.Transcription, error) {
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)
	for rows.Next() {
		var t model.Transcription
		var hasError int
		err := rows.Scan(
			&t.ID, &t.RunID, &t.InputDir, &t.FileName, &t.OutputFile,
			&t.Engine, &t.Model, &t.AudioDuration, &t.Text,
			&hasError, &t.ErrorMessage, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		t.HasError = hasError != 0
		transcriptions = append(transcriptions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return transcriptions, nil
}
