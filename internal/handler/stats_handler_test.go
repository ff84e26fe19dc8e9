package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordHandler(t *testing.T) {
	srv := newTestServer(t, 100)

	t.Run("list with prefix and limit", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/words?q=word0&limit=3", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseJSONResponse(t, w)
		assert.Len(t, resp["words"], 3)
		assert.EqualValues(t, 10, resp["total"])
	})

	t.Run("get by id", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/words/2", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Word02", field(t, parseJSONResponse(t, w), "word", "word"))
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"unknown id", "/api/words/999", http.StatusNotFound},
		{"non numeric id", "/api/words/abc", http.StatusBadRequest},
		{"bad limit", "/api/words?limit=x", http.StatusBadRequest},
		{"zero limit", "/api/words?limit=0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodGet, tt.path, nil, "")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestStatsHandler_SubmitAndRead(t *testing.T) {
	srv := newTestServer(t, 100)

	batch := []gin.H{
		{"wordId": 3, "isCorrect": false},
		{"wordId": 3, "isCorrect": false},
		{"wordId": 3, "isCorrect": false},
		{"wordId": 3, "isCorrect": true},
		{"wordId": 3, "isCorrect": false},
		{"wordId": 5, "isCorrect": true},
	}
	w := srv.do(t, http.MethodPost, "/api/stats/submit", batch, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "Updated 6 word statistics", resp["message"])
	assert.Len(t, resp["stats"], 6)

	w = srv.do(t, http.MethodGet, "/api/stats/global", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseJSONResponse(t, w)
	assert.EqualValues(t, 2, resp["totalWords"])
	assert.EqualValues(t, 4, field(t, resp, "stats", "3", "incorrect"))
	assert.EqualValues(t, 5, field(t, resp, "stats", "3", "totalAttempts"))
	assert.InDelta(t, 0.8, field(t, resp, "stats", "3", "difficultyScore"), 1e-9)

	w = srv.do(t, http.MethodGet, "/api/stats/top-missed?limit=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseJSONResponse(t, w)
	words := resp["words"].([]interface{})
	require.Len(t, words, 1, "слово 5 не набрало минимум попыток")
	top := words[0].(map[string]interface{})
	assert.EqualValues(t, 3, top["id"])
	assert.EqualValues(t, 80, top["errorPercentage"])
	assert.EqualValues(t, 2, resp["totalTrackedWords"])

	w = srv.do(t, http.MethodGet, "/api/stats/top-missed?minAttempts=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseJSONResponse(t, w)["words"], 2)

	w = srv.do(t, http.MethodGet, "/api/stats/top-missed?minAttempts=0", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseJSONResponse(t, w)["words"], 2)

	w = srv.do(t, http.MethodGet, "/api/stats/top-missed?limit=0", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseJSONResponse(t, w)
	assert.Empty(t, resp["words"])
	assert.EqualValues(t, 2, resp["totalTrackedWords"])
}

func TestStatsHandler_SubmitValidation(t *testing.T) {
	srv := newTestServer(t, 100)

	tests := []struct {
		name string
		body interface{}
	}{
		{"not an array", gin.H{"wordId": 1, "isCorrect": true}},
		{"missing isCorrect", []gin.H{{"wordId": 1}}},
		{"missing wordId", []gin.H{{"isCorrect": true}}},
		{"unknown word", []gin.H{{"wordId": 1, "isCorrect": true}, {"wordId": 404, "isCorrect": false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/api/stats/submit", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "validation_error", parseJSONResponse(t, w)["error_type"])
		})
	}

	// отклоненный пакет не применяется частично
	w := srv.do(t, http.MethodGet, "/api/stats/global", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, parseJSONResponse(t, w)["totalWords"])

	w = srv.do(t, http.MethodGet, "/api/stats/top-missed?limit=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodGet, "/api/stats/top-missed?minAttempts=-2", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLearningHandler(t *testing.T) {
	srv := newTestServer(t, 100)

	w := srv.do(t, http.MethodGet, "/api/learning/words?count=4", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	words := parseJSONResponse(t, w)["words"].([]interface{})
	require.Len(t, words, 4)
	seen := make(map[float64]bool)
	for _, raw := range words {
		id := raw.(map[string]interface{})["id"].(float64)
		assert.False(t, seen[id], "слова не повторяются")
		seen[id] = true
	}

	w = srv.do(t, http.MethodGet, "/api/learning/words", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseJSONResponse(t, w)["words"], 10)

	for _, q := range []string{"count=500", "count=-1", "count=abc"} {
		w = srv.do(t, http.MethodGet, "/api/learning/words?"+q, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t, 100)

	w := srv.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.EqualValues(t, 10, resp["words"])
}
