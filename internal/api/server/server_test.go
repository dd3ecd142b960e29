package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/testutil"
	"memo-whisper/internal/config"
)

func newTestServer(t *testing.T, db *testutil.MockTranscriptionDAO) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Verbose = true
	return New(cfg, db, zap.NewNop())
}

func seedLedger(t *testing.T, db *testutil.MockTranscriptionDAO) {
	t.Helper()
	rows := []model.Transcription{
		{RunID: "run-1", InputDir: "/voice", FileName: "a.m4a", Text: "team meeting notes"},
		{RunID: "run-1", InputDir: "/voice", FileName: "b.m4a", Text: "grocery list"},
		{RunID: "run-2", InputDir: "/lectures", FileName: "c.m4a", HasError: true, ErrorMessage: "moov atom not found"},
	}
	for _, row := range rows {
		require.NoError(t, db.Record(row))
	}
}

func doRequest(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router().ServeHTTP(recorder, request)

	body := map[string]json.RawMessage{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	}
	return recorder, body
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, testutil.NewMockTranscriptionDAO())

	recorder, body := doRequest(t, s, "/health")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `"healthy"`, string(body["status"]))
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, testutil.NewMockTranscriptionDAO())

	recorder, _ := doRequest(t, s, "/health")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	request.Header.Set("X-Request-ID", "caller-chosen")
	s.Router().ServeHTTP(recorder, request)
	assert.Equal(t, "caller-chosen", recorder.Header().Get("X-Request-ID"))
}

func TestListTranscriptions(t *testing.T) {
	t.Run("recent", func(t *testing.T) {
		db := testutil.NewMockTranscriptionDAO()
		seedLedger(t, db)
		s := newTestServer(t, db)

		recorder, body := doRequest(t, s, "/api/v1/transcriptions")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `3`, string(body["count"]))
	})

	t.Run("filtered_by_input_dir", func(t *testing.T) {
		db := testutil.NewMockTranscriptionDAO()
		seedLedger(t, db)
		s := newTestServer(t, db)

		recorder, body := doRequest(t, s, "/api/v1/transcriptions?input_dir=/lectures")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `1`, string(body["count"]))

		var rows []model.Transcription
		require.NoError(t, json.Unmarshal(body["transcriptions"], &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "c.m4a", rows[0].FileName)
	})

	t.Run("limit_applies", func(t *testing.T) {
		db := testutil.NewMockTranscriptionDAO()
		seedLedger(t, db)
		s := newTestServer(t, db)

		recorder, body := doRequest(t, s, "/api/v1/transcriptions?limit=2")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `2`, string(body["count"]))
	})

	t.Run("limit_applies_to_the_filtered_list_too", func(t *testing.T) {
		db := testutil.NewMockTranscriptionDAO()
		seedLedger(t, db)
		s := newTestServer(t, db)

		recorder, body := doRequest(t, s, "/api/v1/transcriptions?input_dir=/voice&limit=1")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `1`, string(body["count"]))

		var rows []model.Transcription
		require.NoError(t, json.Unmarshal(body["transcriptions"], &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "/voice", rows[0].InputDir)
	})

	t.Run("store_failure_maps_to_500", func(t *testing.T) {
		db := testutil.NewMockTranscriptionDAO().WithReadError(errors.New("database is locked"))
		s := newTestServer(t, db)

		recorder, body := doRequest(t, s, "/api/v1/transcriptions")
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Contains(t, string(body["error"]), "database is locked")
	})
}

func TestSearchTranscriptions(t *testing.T) {
	t.Run("matches_text", func(t *testing.T) {
		db := testutil.NewMockTranscriptionDAO()
		seedLedger(t, db)
		s := newTestServer(t, db)

		recorder, body := doRequest(t, s, "/api/v1/transcriptions/search?q=meeting")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `1`, string(body["count"]))
	})

	t.Run("missing_query_is_rejected", func(t *testing.T) {
		s := newTestServer(t, testutil.NewMockTranscriptionDAO())

		recorder, body := doRequest(t, s, "/api/v1/transcriptions/search")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, string(body["error"]), "q")
	})
}

func TestStatsEndpoint(t *testing.T) {
	db := testutil.NewMockTranscriptionDAO()
	seedLedger(t, db)
	s := newTestServer(t, db)

	recorder, _ := doRequest(t, s, "/api/v1/stats")
	assert.Equal(t, http.StatusOK, recorder.Code)

	var stats model.LedgerStats
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Errored)
	assert.Equal(t, int64(2), stats.Runs)
}
