package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
	"github.com/lib/pq" // Используем pq для классификации ошибок
	"go.uber.org/zap"
)

// listRunsLimit ограничивает количество запусков, возвращаемых ListRuns
const listRunsLimit = 100

// PostgresStorage реализует RunStorage с использованием PostgreSQL
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStorage создает новый экземпляр PostgresStorage
func NewPostgresStorage(dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close DB connection after ping error", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("database connection check error: %w", err)
	}

	createTableSQL := `CREATE TABLE IF NOT EXISTS purge_runs (` +
		`run_id VARCHAR(36) PRIMARY KEY,` +
		`context_id TEXT NOT NULL,` +
		`created_at TIMESTAMPTZ NOT NULL,` +
		`summary JSONB NOT NULL` +
		`)`
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close DB connection after table creation error", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("table creation error: %w", err)
	}

	return &PostgresStorage{
		db:     db,
		logger: logger,
	}, nil
}

// SaveRun сохраняет итог запуска в базе данных
func (ps *PostgresStorage) SaveRun(ctx context.Context, run models.RunRecord) error {
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("summary serialization error: %w", err)
	}

	_, err = ps.db.ExecContext(ctx,
		"INSERT INTO purge_runs (run_id, context_id, created_at, summary) VALUES ($1, $2, $3, $4)",
		run.RunID, run.ContextID, run.CreatedAt, summaryJSON)
	if err != nil {
		// 23505 = unique_violation
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRunConflict
		}
		return fmt.Errorf("save run error: %w", err)
	}

	return nil
}

// GetRun получает запуск по идентификатору
func (ps *PostgresStorage) GetRun(ctx context.Context, runID string) (models.RunRecord, error) {
	var run models.RunRecord
	var summaryJSON []byte

	err := ps.db.QueryRowContext(ctx,
		"SELECT run_id, context_id, created_at, summary FROM purge_runs WHERE run_id = $1",
		runID).Scan(&run.RunID, &run.ContextID, &run.CreatedAt, &summaryJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RunRecord{}, ErrRunNotFound
		}
		return models.RunRecord{}, fmt.Errorf("get run error: %w", err)
	}

	if err := json.Unmarshal(summaryJSON, &run.Summary); err != nil {
		return models.RunRecord{}, fmt.Errorf("summary deserialization error: %w", err)
	}

	return run, nil
}

// ListRuns возвращает последние запуски, начиная с самого нового
func (ps *PostgresStorage) ListRuns(ctx context.Context) ([]models.RunRecord, error) {
	rows, err := ps.db.QueryContext(ctx,
		"SELECT run_id, context_id, created_at, summary FROM purge_runs ORDER BY created_at DESC LIMIT $1",
		listRunsLimit)
	if err != nil {
		return nil, fmt.Errorf("list runs error: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			ps.logger.Error("Error closing rows", zap.Error(err))
		}
	}()

	var result []models.RunRecord
	for rows.Next() {
		var run models.RunRecord
		var summaryJSON []byte
		if err := rows.Scan(&run.RunID, &run.ContextID, &run.CreatedAt, &summaryJSON); err != nil {
			return nil, fmt.Errorf("scan run error: %w", err)
		}
		if err := json.Unmarshal(summaryJSON, &run.Summary); err != nil {
			return nil, fmt.Errorf("summary deserialization error: %w", err)
		}
		result = append(result, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// CheckConnection проверяет соединение с базой данных
func (ps *PostgresStorage) CheckConnection(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// Close закрывает соединение с базой данных
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}
