package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/InQaaaaGit/purge_env.git/internal/config"
	"github.com/InQaaaaGit/purge_env.git/internal/middleware"
	"github.com/InQaaaaGit/purge_env.git/internal/models"
	"github.com/InQaaaaGit/purge_env.git/internal/service"
	"github.com/InQaaaaGit/purge_env.git/internal/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	contentTypeJSON       = "application/json"
	emptyContextMessage   = "empty context identifier"
	missingRecordsMessage = "records are required"
	runNotFoundMessage    = "run not found"
)

// Handler содержит HTTP-обработчики сервиса пакетного удаления конвертов
type Handler struct {
	service service.PurgeService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(service service.PurgeService, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// HandlePurgeEnvelopes обрабатывает POST запрос на пакетное удаление конвертов.
// Принимает JSON с идентификатором контекста и списком записей,
// возвращает итог запуска в формате JSON.
func (h *Handler) HandlePurgeEnvelopes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Unable to read request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	var req models.PurgeRequest
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.ContextID) == "" {
		http.Error(w, emptyContextMessage, http.StatusBadRequest)
		return
	}
	if req.Records == nil {
		http.Error(w, missingRecordsMessage, http.StatusBadRequest)
		return
	}

	h.logger.Info("Received purge request",
		zap.String("context_id", req.ContextID),
		zap.Int("records", len(req.Records)))

	summary, err := h.service.PurgeEnvelopes(r.Context(), req.ContextID, req.Records)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Error processing purge request", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// HandleListRuns обрабатывает GET запрос списка сохраненных запусков
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runs, err := h.service.ListRuns(r.Context())
	if err != nil {
		h.logger.Error("Error listing runs", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// HandleGetRun обрабатывает GET запрос одного сохраненного запуска
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID := chi.URLParam(r, "runID")
	if runID == "" {
		http.Error(w, "Empty runID", http.StatusBadRequest)
		return
	}

	run, err := h.service.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			http.Error(w, runNotFoundMessage, http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting run", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(run); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		latency := time.Since(start)
		h.logger.Info("Request processed",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Duration("latency", latency),
			zap.Int("status", ww.Status()),
			zap.Int("size", ww.BytesWritten()),
		)
	})
}

// WithGzip добавляет поддержку gzip сжатия
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}
