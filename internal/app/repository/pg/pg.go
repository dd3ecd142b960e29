package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"memo-whisper/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id SERIAL PRIMARY KEY,
	run_id TEXT NOT NULL,
	input_dir TEXT NOT NULL,
	file_name TEXT NOT NULL,
	output_file TEXT NOT NULL DEFAULT '',
	engine TEXT NOT NULL,
	model TEXT NOT NULL,
	audio_duration INTEGER NOT NULL DEFAULT 0,
	transcription TEXT NOT NULL DEFAULT '',
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_file_name ON transcriptions(file_name);
CREATE INDEX IF NOT EXISTS idx_transcriptions_run_id ON transcriptions(run_id);
`

// PostgresDB is the shared-server variant of the transcription ledger.
type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB connects with the given DSN and ensures the schema exists.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcriptions table: %w", err)
	}

	return &PostgresDB{repository.NewCommonDB(db, "postgres")}, nil
}
