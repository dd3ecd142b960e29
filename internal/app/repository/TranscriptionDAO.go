package repository

import "memo-whisper/internal/app/model"

// TranscriptionDAO persists per-file outcomes and serves the history
// surfaces (export, serve). It is never consulted for batch skip decisions;
// those rely on output-file existence alone.
type TranscriptionDAO interface {
	Close() error

	Record(t model.Transcription) error

	GetRecent(limit int) ([]model.Transcription, error)

	GetByInputDir(inputDir string, limit int) ([]model.Transcription, error)

	Search(term string, limit int) ([]model.Transcription, error)

	Stats() (model.LedgerStats, error)
}
