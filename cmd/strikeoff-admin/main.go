// Точка входа Strikeoff Dashboard — админ-панель заявок на strike-off.
// Загружает конфигурацию, применяет миграции, подключается к PostgreSQL,
// создаёт сервисный слой и API handlers, запускает воркер webhook-уведомлений
// и topologymetrics, HTTP-сервер с JWT middleware и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/redboxrob/strikeoff-admin/internal/api/handlers"
	"github.com/redboxrob/strikeoff-admin/internal/api/middleware"
	"github.com/redboxrob/strikeoff-admin/internal/config"
	"github.com/redboxrob/strikeoff-admin/internal/database"
	"github.com/redboxrob/strikeoff-admin/internal/domain/model"
	"github.com/redboxrob/strikeoff-admin/internal/repository"
	"github.com/redboxrob/strikeoff-admin/internal/server"
	"github.com/redboxrob/strikeoff-admin/internal/service"
	"github.com/redboxrob/strikeoff-admin/internal/webhook"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Strikeoff Dashboard запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if os.Getenv("SD_DEPHEALTH_GROUP") == "" {
		logger.Warn("SD_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья PostgreSQL идёт через существующий пул соединений,
	// что позволяет обнаружить его исчерпание.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Repositories
	recordRepo := repository.NewRecordRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// 6. Webhook notifier — очередь и воркер best-effort уведомлений
	webhookURLs := make(map[string]string, 3)
	for _, action := range []string{model.ActionProcessed, model.ActionUnprocessed, model.ActionDelete} {
		webhookURLs[action] = cfg.WebhookURL(action)
	}
	notifier := webhook.New(webhookURLs, cfg.WebhookTimeout, cfg.WebhookQueueSize, logger)
	notifier.Start(ctx)

	// 7. Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.JWTLeeway, logger)
	recordSvc := service.NewRecordService(recordRepo, notifier, logger)

	// 8. topologymetrics — мониторинг зависимостей (PostgreSQL + webhook-адреса)
	var dephealthSvc *service.DephealthService
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"strikeoff-admin",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		webhookURLs,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 9. Readiness checker и API handler
	pgChecker := database.NewReadinessChecker(pool)
	healthHandler := handlers.NewHealthHandler(pgChecker)
	apiHandler := handlers.NewAPIHandler(healthHandler, authSvc, recordSvc, logger)

	// 10. JWT middleware
	auth := middleware.NewAuth(authSvc)

	// 11. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, auth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 12. Graceful shutdown фоновых задач
	logger.Info("Останавливаем фоновые задачи...")

	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	notifier.Stop()

	logger.Info("Strikeoff Dashboard остановлен")
}
