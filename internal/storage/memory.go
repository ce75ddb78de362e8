package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
	"go.uber.org/zap"
)

// MemoryStorage реализует RunStorage с использованием памяти
type MemoryStorage struct {
	mu     sync.RWMutex
	runs   map[string]models.RunRecord
	order  []string // run_id в порядке сохранения
	logger *zap.Logger
}

// NewMemoryStorage создает новый экземпляр MemoryStorage
func NewMemoryStorage(logger *zap.Logger) *MemoryStorage {
	return &MemoryStorage{
		runs:   make(map[string]models.RunRecord),
		logger: logger,
	}
}

// SaveRun сохраняет итог запуска в памяти
func (ms *MemoryStorage) SaveRun(ctx context.Context, run models.RunRecord) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.runs[run.RunID]; exists {
		return ErrRunConflict
	}

	ms.runs[run.RunID] = run
	ms.order = append(ms.order, run.RunID)
	return nil
}

// GetRun получает запуск по идентификатору
func (ms *MemoryStorage) GetRun(ctx context.Context, runID string) (models.RunRecord, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	run, exists := ms.runs[runID]
	if !exists {
		return models.RunRecord{}, ErrRunNotFound
	}

	return run, nil
}

// ListRuns возвращает запуски, начиная с последнего сохраненного
func (ms *MemoryStorage) ListRuns(ctx context.Context) ([]models.RunRecord, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]models.RunRecord, 0, len(ms.order))
	for i := len(ms.order) - 1; i >= 0; i-- {
		result = append(result, ms.runs[ms.order[i]])
	}

	return result, nil
}

// CheckConnection проверяет доступность хранилища
func (ms *MemoryStorage) CheckConnection(ctx context.Context) error {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.runs == nil {
		return fmt.Errorf("storage is not initialized")
	}

	return nil
}
