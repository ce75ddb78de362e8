package models

import "time"

// Record представляет одну запись из загруженной таблицы конвертов
type Record struct {
	EnvelopeID string `json:"envelope_id"`
	AuthToken  string `json:"auth_token"`
}

// PurgeRequest представляет запрос на пакетное удаление конвертов
type PurgeRequest struct {
	ContextID string   `json:"context_id"`
	Records   []Record `json:"records"`
}

// BatchResult представляет результат отправки одного пакета
type BatchResult struct {
	BatchNumber    int      `json:"batch_number"`
	Success        bool     `json:"success"`
	ItemCount      int      `json:"item_count"`
	StatusCode     int      `json:"status_code,omitempty"`
	Response       string   `json:"response,omitempty"`
	ParsedResponse *XMLNode `json:"parsed_response,omitempty"`
	Error          string   `json:"error,omitempty"`
	ErrorCode      string   `json:"error_code,omitempty"`
}

// RunSummary представляет итог одного запуска пакетного удаления
type RunSummary struct {
	Success           bool          `json:"success"`
	TotalBatches      int           `json:"total_batches"`
	TotalItems        int           `json:"total_items"`
	SuccessfulBatches int           `json:"successful_batches"`
	Aborted           bool          `json:"aborted,omitempty"`
	AbortReason       string        `json:"abort_reason,omitempty"`
	Results           []BatchResult `json:"results"`
}

// RunRecord представляет сохраненный в истории запуск
type RunRecord struct {
	RunID     string     `json:"run_id"`
	ContextID string     `json:"context_id"`
	CreatedAt time.Time  `json:"created_at"`
	Summary   RunSummary `json:"summary"`
}
