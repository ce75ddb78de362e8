// Package app содержит основную структуру приложения и логику инициализации.
// Предоставляет точку входа для запуска HTTP сервера с настроенными маршрутами и middleware.
package app

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/InQaaaaGit/purge_env.git/internal/config"
	"github.com/InQaaaaGit/purge_env.git/internal/handler"
	"github.com/InQaaaaGit/purge_env.git/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App представляет приложение сервиса пакетного удаления конвертов.
// Инкапсулирует конфигурацию, HTTP роутер, логгер и обработчики запросов.
type App struct {
	config  *config.Config   // Конфигурация приложения
	router  *chi.Mux         // HTTP роутер для обработки запросов
	logger  *zap.Logger      // Логгер для записи событий приложения
	handler *handler.Handler // Обработчики HTTP запросов
}

// NewApp создает и инициализирует новый экземпляр приложения.
// Настраивает сервисный слой, обработчики запросов, middleware и маршруты.
//
// Параметры:
//   - cfg: конфигурация приложения с настройками сервера, провайдера и хранилища
//   - logger: логгер приложения
//
// Возвращает указатель на App или ошибку при неудачной инициализации зависимостей.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	purgeService, err := service.NewPurgeService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating service: %w", err)
	}

	h := handler.NewHandler(purgeService, cfg, logger)

	a := &App{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		handler: h,
	}
	a.setupRoutes()

	return a, nil
}

// setupRoutes настраивает HTTP маршруты и middleware для приложения.
// Регистрирует все эндпоинты API и применяет глобальные middleware
// (логирование, сжатие).
func (a *App) setupRoutes() {
	// Middleware
	a.router.Use(a.handler.WithLogging)
	a.router.Use(a.handler.WithGzip)

	// Routes
	a.router.Post("/api/envelopes/purge", a.handler.HandlePurgeEnvelopes)
	a.router.Get("/api/purge/runs", a.handler.HandleListRuns)
	a.router.Get("/api/purge/runs/{runID}", a.handler.HandleGetRun)
	a.router.Get("/ping", a.handler.HandlePing)

	// Профилирование (доступно только в debug режиме)
	a.router.Mount("/debug/pprof", http.DefaultServeMux)
}

// Run запускает HTTP сервер приложения.
// Блокирующий вызов - выполняется до остановки сервера.
//
// Возвращает ошибку, если сервер не может быть запущен или произошла ошибка во время работы.
func (a *App) Run() error {
	server := a.GetServer()
	a.logger.Info("Starting HTTP server", zap.String("address", a.config.ServerAddress))
	return server.ListenAndServe()
}

// GetServer создает и возвращает настроенный HTTP сервер.
// Использует текущий роутер приложения как обработчик запросов.
// ReadTimeout и WriteTimeout учитывают, что один запуск может длиться
// до N пакетов по таймауту плюс паузы между пакетами.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:        a.config.ServerAddress,
		Handler:     a.router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
}

// Router возвращает HTTP роутер приложения (используется в тестах)
func (a *App) Router() *chi.Mux {
	return a.router
}
