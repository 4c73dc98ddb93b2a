package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aniview/aniview/internal/api"
	"github.com/aniview/aniview/internal/catalog"
	"github.com/aniview/aniview/internal/catalog/jikan"
	"github.com/aniview/aniview/internal/config"
	"github.com/aniview/aniview/internal/database"
	"github.com/aniview/aniview/internal/library"
	"github.com/aniview/aniview/internal/logger"
	"github.com/aniview/aniview/internal/scheduler"
	"github.com/aniview/aniview/internal/scheduler/tasks"
	"github.com/aniview/aniview/internal/settings"
)

func main() {
	// Optional .env for local development; real config comes from viper.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("database", cfg.Database.Path).
		Msg("starting AniView")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	log.Info().Msg("running database migrations")
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Stores and services are constructed once here and handed to whoever
	// needs them; nothing reaches for ambient global state.
	settingsService := settings.NewService(db.Conn(), log.Logger)
	libraryService := library.NewService(db.Conn(), log.Logger)
	jikanClient := jikan.NewClient(cfg.Catalog, log.Logger)
	catalogService := catalog.NewService(jikanClient, settingsService, cfg.Catalog, log.Logger)

	sched, err := scheduler.New(log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	if err := tasks.RegisterDatabaseMaintenanceTask(sched, db); err != nil {
		log.Fatal().Err(err).Msg("failed to register maintenance task")
	}
	sched.Start()

	server := api.NewServer(cfg, catalogService, libraryService, settingsService, sched, log.Logger)

	go func() {
		addr := cfg.Server.Address()
		log.Info().Str("address", addr).Msg("HTTP server listening")
		if err := server.Start(addr); err != nil {
			log.Info().Msg("server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown error")
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
