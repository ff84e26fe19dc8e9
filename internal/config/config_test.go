package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "отсутствующий файл конфигурации допустим")

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/vocab.db", cfg.Database.SQLitePath)
	assert.Equal(t, "file", cfg.Stats.Backend)
	assert.Equal(t, 1796, cfg.Quiz.MaxQuestions)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TokenTTL())
	assert.NotEmpty(t, cfg.JWT.Secret, "в режиме разработки подставляется ключ по умолчанию")
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
  allowedOrigins: ["https://vocab.example"]
database:
  driver: postgres
  host: db
  user: vocab
  dbname: vocab
jwt:
  secret: from-file
quiz:
  sessionTTLMinutes: 30
  maxQuestions: 50
`)
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_PASSWORD", "pw")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://vocab.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "from-env", cfg.JWT.Secret, "переменная окружения важнее файла")
	assert.Equal(t, 30*time.Minute, cfg.Quiz.SessionTTL())
	assert.Equal(t, 50, cfg.Quiz.MaxQuestions)
	assert.Equal(t, "host=db port=5432 user=vocab password=pw dbname=vocab sslmode=disable",
		cfg.Database.PostgresConnectionString())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Mode:     "release",
			Database: DatabaseConfig{Driver: "sqlite", SQLitePath: "x.db"},
			JWT:      JWTConfig{Secret: "s", ExpirationHrs: 1},
			Catalog:  CatalogConfig{Path: "words.json"},
			Stats:    StatsConfig{Backend: "file", FilePath: "stats.json"},
			Quiz:     QuizConfig{SessionTTLMinutes: 1, MaxQuestions: 1},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"нет секрета в release", func(c *Config) { c.JWT.Secret = "" }},
		{"неизвестный драйвер", func(c *Config) { c.Database.Driver = "mysql" }},
		{"postgres без хоста", func(c *Config) { c.Database.Driver = "postgres" }},
		{"sqlite без пути", func(c *Config) { c.Database.SQLitePath = "" }},
		{"redis-статистика без redis", func(c *Config) { c.Stats.Backend = "redis" }},
		{"неизвестное хранилище статистики", func(c *Config) { c.Stats.Backend = "s3" }},
		{"нет каталога", func(c *Config) { c.Catalog.Path = "" }},
		{"нулевой лимит вопросов", func(c *Config) { c.Quiz.MaxQuestions = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
