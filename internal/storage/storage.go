// Package storage реализует хранилище истории запусков пакетного удаления.
// Доступны три реализации: память, файл и PostgreSQL.
package storage

import (
	"context"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
)

// RunStorage определяет интерфейс хранилища истории запусков
type RunStorage interface {
	// SaveRun сохраняет итог запуска
	SaveRun(ctx context.Context, run models.RunRecord) error
	// GetRun получает запуск по идентификатору
	GetRun(ctx context.Context, runID string) (models.RunRecord, error)
	// ListRuns возвращает запуски, начиная с последнего
	ListRuns(ctx context.Context) ([]models.RunRecord, error)
}

// DatabaseChecker определяет интерфейс для проверки соединения с хранилищем
type DatabaseChecker interface {
	// CheckConnection проверяет соединение с хранилищем
	CheckConnection(ctx context.Context) error
}
