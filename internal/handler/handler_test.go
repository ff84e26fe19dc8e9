package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/internal/middleware"
	"github.com/satvocab/vocab-api/internal/repository/file"
	"github.com/satvocab/vocab-api/internal/repository/memory"
	"github.com/satvocab/vocab-api/internal/repository/sqlite"
	"github.com/satvocab/vocab-api/internal/service"
	"github.com/satvocab/vocab-api/internal/service/selector"
	"github.com/satvocab/vocab-api/pkg/auth"
	"github.com/satvocab/vocab-api/pkg/auth/manager"
	"github.com/satvocab/vocab-api/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testMaxQuestions = 20

// testServer - роутер со всеми обработчиками поверх SQLite в памяти,
// файловой глобальной статистики и кеша в памяти
type testServer struct {
	router  *gin.Engine
	catalog *catalog.Catalog
}

func newTestCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	words := make([]entity.Word, 0, n)
	for i := 1; i <= n; i++ {
		words = append(words, entity.Word{
			ID:         i,
			Word:       fmt.Sprintf("Word%02d", i),
			Definition: fmt.Sprintf("Definition %02d", i),
			Synonym:    fmt.Sprintf("synonym%02d", i),
		})
	}
	c, err := catalog.New(words)
	require.NoError(t, err)
	return c
}

func newTestServer(t *testing.T, authLimit int) *testServer {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, sqlite.InitSchema(db))
	t.Cleanup(func() { db.Close() })

	statsRepo, err := file.NewGlobalStatsRepo(filepath.Join(t.TempDir(), "global-stats.json"))
	require.NoError(t, err)

	jwtService, err := auth.NewJWTService("handler-test-secret", time.Hour)
	require.NoError(t, err)
	tokenManager, err := manager.NewTokenManager(jwtService)
	require.NoError(t, err)

	c := newTestCatalog(t, 10)
	cache := memory.NewCacheRepo()

	authService, err := service.NewAuthService(sqlite.NewUserRepo(db), tokenManager)
	require.NoError(t, err)
	perfService := service.NewPerformanceService(sqlite.NewPerformanceRepo(db), c)
	statsService := service.NewGlobalStatsService(statsRepo, c, nil)
	quizGenerator := selector.NewGenerator(c, selector.DefaultWeights(), selector.NewRandomSource(11))
	learningGenerator := selector.NewGenerator(c, selector.LearningWeights(), selector.NewRandomSource(13))
	quizService := service.NewQuizService(quizGenerator, cache, perfService, statsService, time.Hour, testMaxQuestions)

	router := gin.New()
	SetupRoutes(router, Handlers{
		Auth:     NewAuthHandler(authService, tokenManager),
		Words:    NewWordHandler(c),
		Stats:    NewStatsHandler(statsService),
		User:     NewUserHandler(perfService, service.NewExportService(perfService)),
		Quiz:     NewQuizHandler(quizService),
		Learning: NewLearningHandler(service.NewLearningService(learningGenerator, statsService)),
		Health:   NewHealthHandler(c, nil),
	}, RouteDeps{
		Auth:        middleware.NewAuthMiddleware(tokenManager),
		RateLimiter: middleware.NewRateLimiter(cache),
		AuthLimit:   middleware.AuthRateLimitConfig(authLimit, time.Hour),
	})

	return &testServer{router: router, catalog: c}
}

// do выполняет запрос; token передается как Bearer
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register создает пользователя и возвращает его токен
func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"username": username, "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseJSONResponse(t, w)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// field достает вложенное поле ответа по цепочке ключей
func field(t *testing.T, resp map[string]interface{}, keys ...string) interface{} {
	t.Helper()
	var cur interface{} = resp
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		require.True(t, ok, "field %q: parent is not an object", k)
		cur, ok = m[k]
		require.True(t, ok, "field %q is missing", k)
	}
	return cur
}
