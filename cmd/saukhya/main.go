package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/saukhya-health/saukhya/internal/api"
	"github.com/saukhya-health/saukhya/internal/config"
	"github.com/saukhya-health/saukhya/internal/db"
	"github.com/saukhya-health/saukhya/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLiteWithOptions(cfg.DBPath, db.SQLiteOptions{
		LogLevel: cfg.DBLogLevel,
		WAL:      cfg.DBWAL,
	})
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, cfg.Location, cfg.CookieSecure)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Saukhya",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	repositories := db.NewRepositories(database)
	reminders := services.NewReminderService(
		repositories.Users,
		services.NewInsightsService(repositories.Periods, repositories.Users),
		newNotifier(cfg),
		cfg.Location,
		cfg.ReminderSchedule,
		cfg.ReminderLeadDays,
	).WithFertilityReminders(cfg.ReminderFertility)
	if err := reminders.Start(lifecycleCtx); err != nil {
		log.Fatalf("reminders init failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Saukhya listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func newNotifier(cfg config.Config) services.Notifier {
	if cfg.TelegramEnabled() {
		log.Printf("reminders: sending to telegram chat %s", cfg.TelegramChatID)
		return services.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	}
	return services.LogNotifier{}
}
