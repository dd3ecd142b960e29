package model

import "time"

// Transcription is one ledger row: the outcome of a single file within a run.
type Transcription struct {
	ID            int64     `json:"id"`
	RunID         string    `json:"run_id"`
	InputDir      string    `json:"input_dir"`
	FileName      string    `json:"file_name"`
	OutputFile    string    `json:"output_file"`
	Engine        string    `json:"engine"`
	Model         string    `json:"model"`
	AudioDuration int       `json:"audio_duration"`
	Text          string    `json:"text"`
	HasError      bool      `json:"has_error"`
	ErrorMessage  string    `json:"error_message"`
	CreatedAt     time.Time `json:"created_at"`
}

// LedgerStats summarizes the transcription history table.
type LedgerStats struct {
	Total     int64      `json:"total"`
	Errored   int64      `json:"errored"`
	Runs      int64      `json:"runs"`
	LastEntry *time.Time `json:"last_entry,omitempty"`
}
