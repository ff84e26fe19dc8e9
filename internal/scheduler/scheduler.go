package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// CachePurger удаляет из кеша записи с истекшим сроком (сессии, счетчики лимитов)
type CachePurger interface {
	PurgeExpired() int
}

// StatsSummarizer пишет в лог сводку глобальной статистики
type StatsSummarizer interface {
	LogSummary(ctx context.Context)
}

// Config - интервалы фоновых задач; нулевой интервал отключает задачу
type Config struct {
	CleanupInterval time.Duration
	SummaryInterval time.Duration
}

// Scheduler запускает фоновые задачи сервиса
type Scheduler struct {
	scheduler *gocron.Scheduler
	cfg       Config
	purger    CachePurger
	stats     StatsSummarizer
}

// New создает планировщик. purger может быть nil, если кеш внешний (Redis сам удаляет ключи).
func New(cfg Config, purger CachePurger, stats StatsSummarizer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		cfg:       cfg,
		purger:    purger,
		stats:     stats,
	}
}

// Start регистрирует задачи и запускает их асинхронно
func (s *Scheduler) Start(ctx context.Context) error {
	if s.purger != nil && s.cfg.CleanupInterval > 0 {
		if _, err := s.scheduler.Every(s.cfg.CleanupInterval).Do(s.purgeCache); err != nil {
			return fmt.Errorf("failed to schedule cache cleanup: %w", err)
		}
	}
	if s.stats != nil && s.cfg.SummaryInterval > 0 {
		if _, err := s.scheduler.Every(s.cfg.SummaryInterval).Do(s.stats.LogSummary, ctx); err != nil {
			return fmt.Errorf("failed to schedule stats summary: %w", err)
		}
	}

	log.Printf("[Scheduler] Запущено задач: %d", len(s.scheduler.Jobs()))
	s.scheduler.StartAsync()
	return nil
}

// Stop останавливает все задачи
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) purgeCache() {
	if removed := s.purger.PurgeExpired(); removed > 0 {
		log.Printf("[Scheduler] Удалено просроченных записей кеша: %d", removed)
	}
}
