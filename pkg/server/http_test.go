package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHTTP_Predict(t *testing.T) {
	t.Parallel()
	h := NewHTTPHandler(testCompleter(), nil)

	rec := serve(t, h, "/predict?p=ame&l=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp CompletionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []CompletionSuggestion{
		{Word: "ame", Rank: 1, Freq: 5},
		{Word: "america", Rank: 2, Freq: 90},
	}, resp.Suggestions)
}

func TestHTTP_PredictErrors(t *testing.T) {
	t.Parallel()
	h := NewHTTPHandler(testCompleter(), nil)

	tests := []*struct {
		name   string
		target string
		status int
	}{
		{"missing prefix", "/predict", http.StatusBadRequest},
		{"bad limit", "/predict?p=am&l=many", http.StatusBadRequest},
		{"no prediction", "/predict/zz", http.StatusNotFound},
		{"unknown route", "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, tt.target)
			assert.Equal(t, tt.status, rec.Code)

			var resp CompletionError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHTTP_PredictOne(t *testing.T) {
	t.Parallel()
	h := NewHTTPHandler(testCompleter(), nil)

	rec := serve(t, h, "/predict/amen")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"prefix": "amen", "word": "amend"}, resp)
}

func TestHTTP_StatsAndHealth(t *testing.T) {
	t.Parallel()
	h := NewHTTPHandler(testCompleter(), nil)

	rec := serve(t, h, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 4, stats["totalWords"])
	assert.Equal(t, 90, stats["maxFrequency"])

	rec = serve(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, rec.status)
}
