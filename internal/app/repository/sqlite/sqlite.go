package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"memo-whisper/internal/app/repository"
	"memo-whisper/internal/app/util/files"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
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
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_file_name ON transcriptions(file_name);
CREATE INDEX IF NOT EXISTS idx_transcriptions_run_id ON transcriptions(run_id);
`

// SQLiteDB is the default transcription ledger, a single-file database.
type SQLiteDB struct {
	*repository.CommonDB
}

// NewSQLiteDB opens the ledger database at dbFilePath, creating the file and
// its parent directory on first use.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	if err := files.EnsureDir(filepath.Dir(dbFilePath)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbFilePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcriptions table: %w", err)
	}

	return &SQLiteDB{repository.NewCommonDB(db, "sqlite3")}, nil
}
