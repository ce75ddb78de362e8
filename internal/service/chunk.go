package service

import (
	"fmt"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
)

// ChunkRecords разбивает упорядоченный список записей на пакеты размером не более size.
// Порядок записей сохраняется, последний пакет может быть меньше size.
// Пустой список дает пустой результат.
func ChunkRecords(records []models.Record, size int) ([][]models.Record, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidInput, size)
	}

	if len(records) == 0 {
		return nil, nil
	}

	chunks := make([][]models.Record, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}

	return chunks, nil
}
