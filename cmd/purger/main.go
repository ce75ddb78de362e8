package main

import (
	"go.uber.org/zap"

	"github.com/InQaaaaGit/purge_env.git/internal/app"
	"github.com/InQaaaaGit/purge_env.git/internal/buildinfo"
	"github.com/InQaaaaGit/purge_env.git/internal/server"
)

// Заполняются при сборке через ldflags
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Print()

	// Инициализация логгера
	logger, cleanup := server.InitLogger()
	defer cleanup()

	// Инициализация конфигурации
	cfg := server.InitConfig(logger)

	// Создание приложения
	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("Ошибка создания приложения", zap.Error(err))
	}

	// Запуск сервера
	httpServer := server.NewHTTPServer(application.GetServer(), cfg, logger)
	if err := httpServer.Start(); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
}
