package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/config"
	"github.com/satvocab/vocab-api/internal/domain/repository"
	"github.com/satvocab/vocab-api/internal/handler"
	"github.com/satvocab/vocab-api/internal/middleware"
	fileRepo "github.com/satvocab/vocab-api/internal/repository/file"
	memoryRepo "github.com/satvocab/vocab-api/internal/repository/memory"
	pgRepo "github.com/satvocab/vocab-api/internal/repository/postgres"
	redisRepo "github.com/satvocab/vocab-api/internal/repository/redis"
	sqliteRepo "github.com/satvocab/vocab-api/internal/repository/sqlite"
	"github.com/satvocab/vocab-api/internal/scheduler"
	"github.com/satvocab/vocab-api/internal/service"
	"github.com/satvocab/vocab-api/internal/service/selector"
	ws "github.com/satvocab/vocab-api/internal/websocket"
	"github.com/satvocab/vocab-api/pkg/auth"
	"github.com/satvocab/vocab-api/pkg/auth/manager"
	"github.com/satvocab/vocab-api/pkg/database"
)

const cacheKeyPrefix = "vocab:"

// relationalStore - репозитории пользователей и персональной статистики
type relationalStore struct {
	users       repository.UserRepository
	performance repository.PerformanceRepository
	close       func() error
}

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := cfg.Mode == "release"
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Словарь загружается один раз и не меняется
	vocab, err := catalog.LoadFile(cfg.Catalog.Path, catalog.LoadOptions{SheetName: cfg.Catalog.Sheet})
	if err != nil {
		log.Printf("Failed to load catalog: %v", err)
		os.Exit(1)
	}
	log.Printf("Словарь загружен: %d слов из %s", vocab.Len(), cfg.Catalog.Path)

	store, err := openRelationalStore(cfg)
	if err != nil {
		log.Printf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Контекст для фоновых горутин (хаб, подписки pub/sub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis необязателен: без него кеш, сессии и статистика живут в процессе
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	var cacheRepo repository.CacheRepository
	var memoryCache *memoryRepo.CacheRepo
	if redisClient != nil {
		redisCache, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to create Redis cache: %v", err)
			os.Exit(1)
		}
		// Сессии и счетчики лимитов живут в общем пространстве ключей vocab:
		cacheRepo = redisCache.WithPrefix(cacheKeyPrefix)
	} else {
		memoryCache = memoryRepo.NewCacheRepo()
		cacheRepo = memoryCache
	}

	statsRepo, err := openGlobalStatsRepo(cfg, redisClient)
	if err != nil {
		log.Printf("Failed to open global stats: %v", err)
		os.Exit(1)
	}

	// WebSocket: при наличии Redis обновления расходятся по всем экземплярам
	var pubSub *ws.RedisPubSub
	var provider ws.PubSubProvider
	if redisClient != nil {
		pubSub, err = ws.NewRedisPubSub(redisClient)
		if err != nil {
			log.Printf("Failed to create Redis PubSub: %v", err)
			os.Exit(1)
		}
		provider = pubSub
	}
	wsHub := ws.NewHub(provider)
	go wsHub.Run(ctx)
	wsManager := ws.NewManager(wsHub)

	// Аутентификация
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TokenTTL())
	if err != nil {
		log.Printf("Failed to create JWT service: %v", err)
		os.Exit(1)
	}
	tokenManager, err := manager.NewTokenManager(jwtService)
	if err != nil {
		log.Printf("Failed to create token manager: %v", err)
		os.Exit(1)
	}
	tokenManager.SetProductionMode(isProduction)

	// Сервисы
	generator := selector.NewGenerator(vocab, selector.DefaultWeights(), selector.NewTimeSeededSource())
	authService, err := service.NewAuthService(store.users, tokenManager)
	if err != nil {
		log.Printf("Failed to create auth service: %v", err)
		os.Exit(1)
	}
	perfService := service.NewPerformanceService(store.performance, vocab)
	statsService := service.NewGlobalStatsService(statsRepo, vocab, wsHub)
	quizService := service.NewQuizService(generator, cacheRepo, perfService, statsService, cfg.Quiz.SessionTTL(), cfg.Quiz.MaxQuestions)
	learningService := service.NewLearningService(generator, statsService)
	exportService := service.NewExportService(perfService)

	// Фоновые задачи
	var purger scheduler.CachePurger
	if memoryCache != nil {
		purger = memoryCache
	}
	jobs := scheduler.New(scheduler.Config{
		CleanupInterval: time.Duration(cfg.Scheduler.CleanupIntervalSec) * time.Second,
		SummaryInterval: time.Duration(cfg.Scheduler.StatsSummaryIntervalMin) * time.Minute,
	}, purger, statsService)
	if err := jobs.Start(ctx); err != nil {
		log.Printf("Failed to start scheduler: %v", err)
		os.Exit(1)
	}

	// Инициализируем роутер Gin
	router := gin.Default()

	// В production не доверяем прокси-заголовкам; за балансировщиком добавьте его IP
	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS (тот же список проверяет WebSocket upgrader)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.SetupRoutes(router, handler.Handlers{
		Auth:     handler.NewAuthHandler(authService, tokenManager),
		Words:    handler.NewWordHandler(vocab),
		Stats:    handler.NewStatsHandler(statsService),
		User:     handler.NewUserHandler(perfService, exportService),
		Quiz:     handler.NewQuizHandler(quizService),
		Learning: handler.NewLearningHandler(learningService),
		WS:       handler.NewWSHandler(wsHub, wsManager, cfg.Server.AllowedOrigins),
		Health:   handler.NewHealthHandler(vocab, wsHub),
	}, handler.RouteDeps{
		Auth:        middleware.NewAuthMiddleware(tokenManager),
		RateLimiter: middleware.NewRateLimiter(cacheRepo),
		AuthLimit: middleware.AuthRateLimitConfig(
			cfg.RateLimit.AuthRequests,
			time.Duration(cfg.RateLimit.AuthWindowSec)*time.Second,
		),
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	jobs.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Останавливаем хаб после HTTP сервера, чтобы новые соединения не регистрировались
	cancel()
	<-wsHub.Done()

	if pubSub != nil {
		if err := pubSub.Close(); err != nil {
			log.Printf("Error closing PubSub provider: %v", err)
		}
	}

	log.Println("Server exited properly")
}

// openRelationalStore открывает PostgreSQL (gorm + миграции) или SQLite (sqlx)
func openRelationalStore(cfg *config.Config) (*relationalStore, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Mode == "debug")
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &relationalStore{
			users:       pgRepo.NewUserRepo(db),
			performance: pgRepo.NewPerformanceRepo(db),
			close:       sqlDB.Close,
		}, nil
	default:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqliteRepo.InitSchema(db); err != nil {
			db.Close()
			return nil, err
		}
		return &relationalStore{
			users:       sqliteRepo.NewUserRepo(db),
			performance: sqliteRepo.NewPerformanceRepo(db),
			close:       db.Close,
		}, nil
	}
}

// openGlobalStatsRepo выбирает хранилище глобальной статистики
func openGlobalStatsRepo(cfg *config.Config, client redis.UniversalClient) (repository.GlobalStatsRepository, error) {
	if cfg.Stats.Backend == "redis" {
		if client == nil {
			return nil, errors.New("stats backend 'redis' requires redis.enabled")
		}
		return redisRepo.NewGlobalStatsRepo(client), nil
	}
	return fileRepo.NewGlobalStatsRepo(cfg.Stats.FilePath)
}
