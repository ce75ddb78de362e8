// Package service содержит конвейер пакетного удаления конвертов:
// валидация входа, разбивка на пакеты, формирование XML-документов,
// последовательная отправка и агрегация результатов.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/InQaaaaGit/purge_env.git/internal/config"
	"github.com/InQaaaaGit/purge_env.git/internal/models"
	"github.com/InQaaaaGit/purge_env.git/internal/soap"
	"github.com/InQaaaaGit/purge_env.git/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurgeService определяет интерфейс сервиса пакетного удаления конвертов
type PurgeService interface {
	PurgeEnvelopes(ctx context.Context, contextID string, records []models.Record) (*models.RunSummary, error)
	GetRun(ctx context.Context, runID string) (models.RunRecord, error)
	ListRuns(ctx context.Context) ([]models.RunRecord, error)
	CheckConnection(ctx context.Context) error
}

// Submitter определяет интерфейс отправки одного пакета провайдеру
type Submitter interface {
	Submit(ctx context.Context, xmlBody string) (*soap.Response, error)
}

// PurgeServiceImpl реализует PurgeService
type PurgeServiceImpl struct {
	submitter Submitter
	storage   storage.RunStorage
	cfg       *config.Config
	logger    *zap.Logger
}

// NewPurgeService создает новый экземпляр PurgeService.
// Хранилище истории запусков выбирается по конфигурации:
// DSN базы данных, путь к файлу, иначе память.
func NewPurgeService(cfg *config.Config, logger *zap.Logger) (*PurgeServiceImpl, error) {
	runStorage, err := newRunStorage(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating run storage: %w", err)
	}

	return &PurgeServiceImpl{
		submitter: soap.NewClient(cfg.EndpointURL, cfg.SOAPAction, cfg.Timeout(), logger),
		storage:   runStorage,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// newRunStorage выбирает реализацию хранилища истории запусков
func newRunStorage(cfg *config.Config, logger *zap.Logger) (storage.RunStorage, error) {
	switch {
	case cfg.DatabaseDSN != "":
		return storage.NewPostgresStorage(cfg.DatabaseDSN, logger)
	case cfg.FileStoragePath != "":
		return storage.NewFileStorage(cfg.FileStoragePath, logger)
	default:
		return storage.NewMemoryStorage(logger), nil
	}
}

// PurgeEnvelopes выполняет один запуск пакетного удаления: проверяет вход,
// разбивает записи на пакеты и отправляет их строго последовательно
// с паузой между пакетами. Timeout и ServiceUnavailable прерывают запуск,
// остальные ошибки фиксируются в результате пакета, и цикл продолжается.
func (s *PurgeServiceImpl) PurgeEnvelopes(ctx context.Context, contextID string, records []models.Record) (*models.RunSummary, error) {
	contextID = strings.TrimSpace(contextID)
	if contextID == "" {
		return nil, fmt.Errorf("%w: empty context identifier", ErrInvalidInput)
	}

	// Проверяем записи до любой сетевой активности
	for i, record := range records {
		if strings.TrimSpace(record.EnvelopeID) == "" {
			return nil, fmt.Errorf("%w: record %d is missing EnvelopeId", ErrInvalidInput, i+1)
		}
		if strings.TrimSpace(record.AuthToken) == "" {
			return nil, fmt.Errorf("%w: record %d is missing AuthToken", ErrInvalidInput, i+1)
		}
	}

	chunks, err := ChunkRecords(records, s.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{
		TotalBatches: len(chunks),
		TotalItems:   len(records),
		Results:      make([]models.BatchResult, 0, len(chunks)),
	}

	for i, chunk := range chunks {
		if i > 0 {
			// Пауза между пакетами — защита от rate limit провайдера
			if err := s.waitBetweenBatches(ctx); err != nil {
				summary.Aborted = true
				summary.AbortReason = fmt.Sprintf("run canceled before batch %d: %v", i+1, err)
				break
			}
		}

		result, submitErr := s.submitBatch(ctx, i+1, chunk, contextID)
		summary.Results = append(summary.Results, result)

		if result.Success {
			summary.SuccessfulBatches++
			s.logger.Info("Batch succeeded",
				zap.Int("batch", result.BatchNumber),
				zap.Int("items", result.ItemCount),
				zap.Int("status", result.StatusCode))
			continue
		}

		s.logger.Error("Batch failed",
			zap.Int("batch", result.BatchNumber),
			zap.Int("items", result.ItemCount),
			zap.String("error_code", result.ErrorCode),
			zap.String("error", result.Error))

		if soap.IsFatal(submitErr) {
			summary.Aborted = true
			summary.AbortReason = fmt.Sprintf("batch %d: %v", result.BatchNumber, submitErr)
			break
		}
	}

	summary.Success = summary.SuccessfulBatches > 0

	s.recordRun(ctx, contextID, summary)

	return summary, nil
}

// waitBetweenBatches ожидает настроенную паузу, прерываясь при отмене контекста
func (s *PurgeServiceImpl) waitBetweenBatches(ctx context.Context) error {
	delay := s.cfg.Delay()
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// submitBatch формирует и отправляет один пакет.
// Возвращает результат пакета и исходную ошибку отправки для классификации в драйвере.
func (s *PurgeServiceImpl) submitBatch(ctx context.Context, number int, chunk []models.Record, contextID string) (models.BatchResult, error) {
	result := models.BatchResult{
		BatchNumber: number,
		ItemCount:   len(chunk),
	}

	envelope, err := BuildEnvelope(chunk, contextID)
	if err != nil {
		result.Error = err.Error()
		result.ErrorCode = "invalid_input"
		return result, err
	}

	resp, err := s.submitter.Submit(ctx, envelope)
	if err != nil {
		result.Error = err.Error()
		result.ErrorCode = soap.ErrorCode(err)
		var remoteErr *soap.RemoteError
		if errors.As(err, &remoteErr) {
			result.StatusCode = remoteErr.StatusCode
			result.Response = remoteErr.Body
		}
		return result, err
	}

	result.Success = true
	result.StatusCode = resp.StatusCode
	result.Response = resp.Body
	result.ParsedResponse = resp.Parsed
	return result, nil
}

// recordRun сохраняет итог запуска в истории.
// Ошибка сохранения не влияет на результат запуска, только логируется.
func (s *PurgeServiceImpl) recordRun(ctx context.Context, contextID string, summary *models.RunSummary) {
	run := models.RunRecord{
		RunID:     uuid.New().String(),
		ContextID: contextID,
		CreatedAt: time.Now().UTC(),
		Summary:   *summary,
	}

	if err := s.storage.SaveRun(ctx, run); err != nil {
		s.logger.Error("Error saving run history", zap.String("run_id", run.RunID), zap.Error(err))
	}
}

// GetRun возвращает сохраненный запуск по идентификатору
func (s *PurgeServiceImpl) GetRun(ctx context.Context, runID string) (models.RunRecord, error) {
	return s.storage.GetRun(ctx, runID)
}

// ListRuns возвращает сохраненные запуски, начиная с последнего
func (s *PurgeServiceImpl) ListRuns(ctx context.Context) ([]models.RunRecord, error) {
	return s.storage.ListRuns(ctx)
}

// CheckConnection проверяет доступность хранилища истории запусков
func (s *PurgeServiceImpl) CheckConnection(ctx context.Context) error {
	if checker, ok := s.storage.(storage.DatabaseChecker); ok {
		return checker.CheckConnection(ctx)
	}
	return nil
}
