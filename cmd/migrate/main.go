package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/wayfarer-app/tripmate/internal/config"
	"github.com/wayfarer-app/tripmate/internal/database"
	"github.com/wayfarer-app/tripmate/pkg/logging"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if *down {
		if err := database.MigrateDown(cfg.DatabaseURL); err != nil {
			slog.Error("migration rollback failed", "error", err)
			os.Exit(1)
		}
		slog.Info("rolled back one migration")
		return
	}

	if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
