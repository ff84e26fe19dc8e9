package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Mode      string `mapstructure:"mode"` // debug | release | test
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Catalog   CatalogConfig
	Stats     StatsConfig
	Quiz      QuizConfig
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Scheduler SchedulerConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string
	ReadTimeout    int      `mapstructure:"readtimeout"`
	WriteTimeout   int      `mapstructure:"writetimeout"`
	AllowedOrigins []string `mapstructure:"allowedorigins"`
}

// DatabaseConfig содержит настройки реляционного хранилища
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"` // postgres | sqlite
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	SQLitePath     string `mapstructure:"sqlitepath"`
	MigrationsPath string `mapstructure:"migrationspath"`
}

// RedisConfig содержит настройки подключения к Redis (single, sentinel, cluster)
type RedisConfig struct {
	// Enabled: без Redis сессии и лимиты хранятся в памяти процесса
	Enabled bool `mapstructure:"enabled"`

	Mode  string   `mapstructure:"mode"`
	Addrs []string `mapstructure:"addrs"`
	Addr  string   `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: только для режима "sentinel"
	MasterName string `mapstructure:"master_name"`

	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff, MaxRetryBackoff: в миллисекундах
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationhrs"`
}

// CatalogConfig - источник словаря
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

// StatsConfig - хранилище глобальной статистики
type StatsConfig struct {
	Backend  string `mapstructure:"backend"` // file | redis
	FilePath string `mapstructure:"filepath"`
}

// QuizConfig - параметры сессий викторины
type QuizConfig struct {
	SessionTTLMinutes int `mapstructure:"sessionttlminutes"`
	MaxQuestions      int `mapstructure:"maxquestions"`
}

// RateLimitConfig - лимиты для /api/auth/*
type RateLimitConfig struct {
	AuthRequests  int `mapstructure:"authrequests"`
	AuthWindowSec int `mapstructure:"authwindowsec"`
}

// SchedulerConfig - интервалы фоновых задач
type SchedulerConfig struct {
	CleanupIntervalSec      int `mapstructure:"cleanupintervalsec"`
	StatsSummaryIntervalMin int `mapstructure:"statssummaryintervalmin"`
}

// SessionTTL возвращает время жизни сессии викторины
func (q QuizConfig) SessionTTL() time.Duration {
	return time.Duration(q.SessionTTLMinutes) * time.Minute
}

// TokenTTL возвращает время жизни JWT
func (j JWTConfig) TokenTTL() time.Duration {
	return time.Duration(j.ExpirationHrs) * time.Hour
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("mode", "debug")
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 15)
	vip.SetDefault("server.writetimeout", 15)
	vip.SetDefault("server.allowedorigins", []string{"http://localhost:3000"})
	vip.SetDefault("database.driver", "sqlite")
	vip.SetDefault("database.sqlitepath", "data/vocab.db")
	vip.SetDefault("database.migrationspath", "migrations")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("jwt.expirationhrs", 168)
	vip.SetDefault("catalog.path", "data/words.json")
	vip.SetDefault("stats.backend", "file")
	vip.SetDefault("stats.filepath", "data/global-stats.json")
	vip.SetDefault("quiz.sessionttlminutes", 120)
	vip.SetDefault("quiz.maxquestions", 1796)
	vip.SetDefault("ratelimit.authrequests", 10)
	vip.SetDefault("ratelimit.authwindowsec", 60)
	vip.SetDefault("scheduler.cleanupintervalsec", 60)
	vip.SetDefault("scheduler.statssummaryintervalmin", 10)
}

func bindEnv(vip *viper.Viper) {
	vip.BindEnv("mode", "GIN_MODE")

	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.sqlitepath", "DATABASE_SQLITE_PATH")
	vip.BindEnv("database.migrationspath", "DATABASE_MIGRATIONS_PATH")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationhrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("catalog.path", "CATALOG_PATH")
	vip.BindEnv("catalog.sheet", "CATALOG_SHEET")

	vip.BindEnv("stats.backend", "STATS_BACKEND")
	vip.BindEnv("stats.filepath", "STATS_FILE_PATH")

	vip.BindEnv("quiz.sessionttlminutes", "QUIZ_SESSION_TTL_MINUTES")
	vip.BindEnv("quiz.maxquestions", "QUIZ_MAX_QUESTIONS")
}

// Load загружает конфигурацию: .env → значения по умолчанию → файл → переменные окружения
func Load(configPath string) (*Config, error) {
	// .env нужен только для локальной разработки
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Config] Предупреждение: не удалось прочитать .env: %v", err)
	}

	vip := viper.New()
	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания", configPath)
			} else {
				log.Printf("[Config] Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Mode != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Mode: %s", cfg.Mode)
		log.Printf("Database Driver: %s", cfg.Database.Driver)
		if cfg.Database.Driver == "postgres" {
			log.Printf("Database Host: %s, Name: %s", cfg.Database.Host, cfg.Database.DBName)
		} else {
			log.Printf("SQLite Path: %s", cfg.Database.SQLitePath)
		}
		log.Printf("Redis Enabled: %t (mode: %s)", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("Catalog: %s", cfg.Catalog.Path)
		log.Printf("Stats Backend: %s", cfg.Stats.Backend)
		log.Printf("JWT Secret Set: %t", cfg.JWT.Secret != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if c.Mode == "release" {
			return fmt.Errorf("JWT secret is required in release mode (check JWT_SECRET env var)")
		}
		c.JWT.Secret = "dev-secret-change-me"
		log.Println("[Config] WARNING: JWT_SECRET не задан, используется ключ разработки")
	}
	if c.JWT.ExpirationHrs <= 0 {
		return fmt.Errorf("jwt.expirationHrs must be positive")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlitePath is required for sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (postgres | sqlite)", c.Database.Driver)
	}

	switch c.Stats.Backend {
	case "file":
		if c.Stats.FilePath == "" {
			return fmt.Errorf("stats.filePath is required for file backend")
		}
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("stats backend redis requires redis.enabled")
		}
	default:
		return fmt.Errorf("unsupported stats backend %q (file | redis)", c.Stats.Backend)
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if c.Quiz.MaxQuestions <= 0 {
		return fmt.Errorf("quiz.maxQuestions must be positive")
	}
	if c.Quiz.SessionTTLMinutes <= 0 {
		return fmt.Errorf("quiz.sessionTTLMinutes must be positive")
	}
	return nil
}
