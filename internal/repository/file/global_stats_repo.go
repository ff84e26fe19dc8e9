package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// GlobalStatsRepo хранит глобальную статистику в JSON-файле {"<wordId>": {...}}.
// Файл перезаписывается целиком (временный файл + rename) один раз на пакет.
type GlobalStatsRepo struct {
	path string
	mu   sync.Mutex
}

// NewGlobalStatsRepo создает репозиторий; отсутствующий файл создается как {}
func NewGlobalStatsRepo(path string) (*GlobalStatsRepo, error) {
	r := &GlobalStatsRepo{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := r.write(entity.GlobalStats{}); err != nil {
			return nil, err
		}
		log.Printf("[GlobalStatsFile] Создан пустой файл статистики %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return r, nil
}

// Load читает статистику; поврежденный файл считается пустым
func (r *GlobalStatsRepo) Load(ctx context.Context) (entity.GlobalStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Apply применяет пакет ответов одной перезаписью файла
func (r *GlobalStatsRepo) Apply(ctx context.Context, batch []entity.AnswerSubmission) ([]entity.WordStatUpdate, error) {
	if len(batch) == 0 {
		return []entity.WordStatUpdate{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, err := r.read()
	if err != nil {
		return nil, err
	}

	updates := make([]entity.WordStatUpdate, len(batch))
	for i, sub := range batch {
		s := stats[sub.WordID]
		s.Record(sub.IsCorrect)
		stats[sub.WordID] = s
		updates[i] = entity.WordStatUpdate{WordID: sub.WordID, Stat: s}
	}

	if err := r.write(stats); err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *GlobalStatsRepo) read() (entity.GlobalStats, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entity.GlobalStats{}, nil
		}
		return nil, fmt.Errorf("failed to read global stats: %w", err)
	}

	raw := make(map[string]entity.GlobalWordStat)
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("[GlobalStatsFile] WARNING: файл %s поврежден, статистика считается пустой: %v", r.path, err)
		return entity.GlobalStats{}, nil
	}

	stats := make(entity.GlobalStats, len(raw))
	for key, s := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			log.Printf("[GlobalStatsFile] WARNING: пропущен некорректный ключ %q", key)
			continue
		}
		stats[id] = s
	}
	return stats, nil
}

func (r *GlobalStatsRepo) write(stats entity.GlobalStats) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}

	data, err := marshalStats(stats)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".global-stats-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp stats file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp stats file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp stats file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace stats file: %w", err)
	}
	return nil
}

// marshalStats сериализует статистику; ключи JSON - строковые ID слов
func marshalStats(stats entity.GlobalStats) ([]byte, error) {
	out := make(map[string]entity.GlobalWordStat, len(stats))
	for id, s := range stats {
		out[strconv.Itoa(id)] = s
	}
	return json.MarshalIndent(out, "", "  ")
}
