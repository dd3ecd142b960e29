package testutil

import (
	"strings"
	"sync"
	"time"

	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
)

// MockTranscriptionDAO is an in-memory repository.TranscriptionDAO.
type MockTranscriptionDAO struct {
	mu sync.RWMutex

	records   []model.Transcription
	recordErr error
	readErr   error
	closeErr  error

	CloseCalled bool
}

var _ repository.TranscriptionDAO = (*MockTranscriptionDAO)(nil)

func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{}
}

// WithRecordError makes every Record call fail with err.
func (m *MockTranscriptionDAO) WithRecordError(err error) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErr = err
	return m
}

// WithReadError makes every query method fail with err.
func (m *MockTranscriptionDAO) WithReadError(err error) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
	return m
}

// WithCloseError makes Close fail with err.
func (m *MockTranscriptionDAO) WithCloseError(err error) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeErr = err
	return m
}

func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return m.closeErr
}

func (m *MockTranscriptionDAO) Record(transcription model.Transcription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	transcription.ID = int64(len(m.records) + 1)
	if transcription.CreatedAt.IsZero() {
		transcription.CreatedAt = time.Now()
	}
	m.records = append(m.records, transcription)
	return nil
}

func (m *MockTranscriptionDAO) GetRecent(limit int) ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	start := len(m.records) - limit
	if limit <= 0 || start < 0 {
		start = 0
	}
	recent := make([]model.Transcription, 0, len(m.records)-start)
	for i := len(m.records) - 1; i >= start; i-- {
		recent = append(recent, m.records[i])
	}
	return recent, nil
}

func (m *MockTranscriptionDAO) GetByInputDir(inputDir string, limit int) ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var matched []model.Transcription
	for i := len(m.records) - 1; i >= 0; i-- {
		if limit > 0 && len(matched) >= limit {
			break
		}
		if m.records[i].InputDir == inputDir {
			matched = append(matched, m.records[i])
		}
	}
	return matched, nil
}

func (m *MockTranscriptionDAO) Search(term string, limit int) ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var matched []model.Transcription
	for i := len(m.records) - 1; i >= 0; i-- {
		if limit > 0 && len(matched) >= limit {
			break
		}
		if strings.Contains(m.records[i].Text, term) {
			matched = append(matched, m.records[i])
		}
	}
	return matched, nil
}

func (m *MockTranscriptionDAO) Stats() (model.LedgerStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.readErr != nil {
		return model.LedgerStats{}, m.readErr
	}
	stats := model.LedgerStats{Total: int64(len(m.records))}
	runs := make(map[string]struct{})
	for _, record := range m.records {
		if record.HasError {
			stats.Errored++
		}
		runs[record.RunID] = struct{}{}
		if stats.LastEntry == nil || record.CreatedAt.After(*stats.LastEntry) {
			createdAt := record.CreatedAt
			stats.LastEntry = &createdAt
		}
	}
	stats.Runs = int64(len(runs))
	return stats, nil
}

// Records returns a copy of everything recorded so far, in insertion order.
func (m *MockTranscriptionDAO) Records() []model.Transcription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]model.Transcription, len(m.records))
	copy(records, m.records)
	return records
}
