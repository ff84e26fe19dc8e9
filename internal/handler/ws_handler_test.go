package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/repository/file"
	"github.com/satvocab/vocab-api/internal/service"
	"github.com/satvocab/vocab-api/internal/websocket"
)

const allowedOrigin = "http://vocab.test"

func newWSTestServer(t *testing.T) (*httptest.Server, *websocket.Hub) {
	t.Helper()

	hub := websocket.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})

	statsRepo, err := file.NewGlobalStatsRepo(filepath.Join(t.TempDir(), "stats.json"))
	require.NoError(t, err)
	statsService := service.NewGlobalStatsService(statsRepo, newTestCatalog(t, 10), hub)

	router := gin.New()
	router.POST("/api/stats/submit", NewStatsHandler(statsService).Submit)
	router.GET("/ws/stats", NewWSHandler(hub, websocket.NewManager(hub), []string{allowedOrigin}).HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/stats"
}

func TestWSHandler_StatsFeed(t *testing.T) {
	srv, hub := newWSTestServer(t)

	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL(srv), http.Header{"Origin": []string{allowedOrigin}})
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/api/stats/submit", "application/json",
		strings.NewReader(`[{"wordId":4,"isCorrect":false},{"wordId":4,"isCorrect":true}]`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string `json:"type"`
		Data []struct {
			WordID int `json:"wordId"`
			Stat   struct {
				TotalAttempts int `json:"totalAttempts"`
			} `json:"stat"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, websocket.GLOBAL_STATS_UPDATED, event.Type)
	require.Len(t, event.Data, 2)
	assert.Equal(t, 4, event.Data[1].WordID)
	assert.Equal(t, 2, event.Data[1].Stat.TotalAttempts)
}

func TestWSHandler_OriginCheck(t *testing.T) {
	srv, _ := newWSTestServer(t)

	_, resp, err := gorillaws.DefaultDialer.Dial(wsURL(srv), http.Header{"Origin": []string{"http://evil.test"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// без Origin подключаются не браузерные клиенты
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	conn.Close()
}
