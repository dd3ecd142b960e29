// Package testutil provides configurable in-memory doubles for the
// transcription engine and the history ledger.
package testutil

import (
	"path/filepath"
	"sync"
	"time"

	"memo-whisper/internal/app/api"
)

// MockTranscriber is a configurable api.Transcriber. Responses and errors
// can be mapped per input path (full path or base name); unmapped paths get
// the default response.
type MockTranscriber struct {
	mu sync.RWMutex

	DefaultResponse string
	DefaultLatency  time.Duration
	ErrorMap        map[string]error
	ResponseMap     map[string]string

	callCount int
	calls     []string
}

var _ api.Transcriber = (*MockTranscriber)(nil)

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "This is a mock transcription result.",
		ErrorMap:        make(map[string]error),
		ResponseMap:     make(map[string]string),
	}
}

// WithDefaultResponse sets the text returned for unmapped input paths.
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultResponse = response
	return m
}

// WithResponse maps an input path to a fixed response.
func (m *MockTranscriber) WithResponse(inputFilePath, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[inputFilePath] = response
	return m
}

// WithError maps an input path to a transcription failure.
func (m *MockTranscriber) WithError(inputFilePath string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[inputFilePath] = err
	return m
}

// WithLatency makes every call sleep, for timing-sensitive tests.
func (m *MockTranscriber) WithLatency(latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultLatency = latency
	return m
}

// Transcript implements api.Transcriber.
func (m *MockTranscriber) Transcript(inputFilePath string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.calls = append(m.calls, inputFilePath)
	latency := m.DefaultLatency
	err, hasErr := m.lookupError(inputFilePath)
	response := m.lookupResponse(inputFilePath)
	m.mu.Unlock()

	if latency > 0 {
		time.Sleep(latency)
	}
	if hasErr {
		return "", err
	}
	return response, nil
}

// CallCount returns how many times Transcript was invoked.
func (m *MockTranscriber) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.callCount
}

// Calls returns the input paths passed to Transcript, in order.
func (m *MockTranscriber) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockTranscriber) lookupError(inputFilePath string) (error, bool) {
	if err, ok := m.ErrorMap[inputFilePath]; ok {
		return err, true
	}
	if err, ok := m.ErrorMap[filepath.Base(inputFilePath)]; ok {
		return err, true
	}
	return nil, false
}

func (m *MockTranscriber) lookupResponse(inputFilePath string) string {
	if response, ok := m.ResponseMap[inputFilePath]; ok {
		return response
	}
	if response, ok := m.ResponseMap[filepath.Base(inputFilePath)]; ok {
		return response
	}
	return m.DefaultResponse
}
