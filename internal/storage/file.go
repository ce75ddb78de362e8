package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
	"go.uber.org/zap"
)

// FileStorage реализует RunStorage с использованием файла.
// Каждый запуск дописывается в конец файла одной JSON-строкой.
type FileStorage struct {
	filePath string
	runs     map[string]models.RunRecord
	order    []string
	mutex    sync.RWMutex
	file     *os.File
	logger   *zap.Logger
}

// NewFileStorage создает новый экземпляр FileStorage
func NewFileStorage(filePath string, logger *zap.Logger) (*FileStorage, error) {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	fs := &FileStorage{
		filePath: filePath,
		file:     file,
		runs:     make(map[string]models.RunRecord),
		logger:   logger,
	}

	if err := fs.loadFromFile(); err != nil {
		logger.Error("Error loading run history from file", zap.Error(err))
		// Не возвращаем ошибку: файл может быть пустым или оборванным
	}

	return fs, nil
}

// loadFromFile загружает сохраненные запуски из файла
func (fs *FileStorage) loadFromFile() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if _, err := fs.file.Seek(0, 0); err != nil {
		return fmt.Errorf("error seeking to file start: %w", err)
	}

	decoder := json.NewDecoder(fs.file)
	for decoder.More() {
		var run models.RunRecord
		if err := decoder.Decode(&run); err != nil {
			return fmt.Errorf("error decoding run record: %w", err)
		}
		if _, exists := fs.runs[run.RunID]; !exists {
			fs.order = append(fs.order, run.RunID)
		}
		fs.runs[run.RunID] = run
	}

	return nil
}

// SaveRun сохраняет итог запуска в файл
func (fs *FileStorage) SaveRun(ctx context.Context, run models.RunRecord) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if _, exists := fs.runs[run.RunID]; exists {
		return ErrRunConflict
	}

	encoder := json.NewEncoder(fs.file)
	if err := encoder.Encode(run); err != nil {
		return fmt.Errorf("error writing run record: %w", err)
	}

	fs.runs[run.RunID] = run
	fs.order = append(fs.order, run.RunID)
	return nil
}

// GetRun получает запуск по идентификатору
func (fs *FileStorage) GetRun(ctx context.Context, runID string) (models.RunRecord, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	run, exists := fs.runs[runID]
	if !exists {
		return models.RunRecord{}, ErrRunNotFound
	}

	return run, nil
}

// ListRuns возвращает запуски, начиная с последнего сохраненного
func (fs *FileStorage) ListRuns(ctx context.Context) ([]models.RunRecord, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	result := make([]models.RunRecord, 0, len(fs.order))
	for i := len(fs.order) - 1; i >= 0; i-- {
		result = append(result, fs.runs[fs.order[i]])
	}

	return result, nil
}

// CheckConnection проверяет доступность файла хранилища
func (fs *FileStorage) CheckConnection(ctx context.Context) error {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	if fs.file == nil {
		return fmt.Errorf("storage file is not open")
	}
	if _, err := os.Stat(fs.filePath); err != nil {
		return fmt.Errorf("storage file is not accessible: %w", err)
	}

	return nil
}

// Close закрывает файл хранилища
func (fs *FileStorage) Close() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.file.Close()
}
