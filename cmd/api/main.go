package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ygglist/ygglist/internal/api/handlers"
	"github.com/ygglist/ygglist/internal/holidays"
	"github.com/ygglist/ygglist/internal/importer"
	"github.com/ygglist/ygglist/internal/jobs/inmemory"
	"github.com/ygglist/ygglist/internal/list"
	"github.com/ygglist/ygglist/internal/logger"
	"github.com/ygglist/ygglist/internal/nfce"
	"github.com/ygglist/ygglist/internal/storage"
	"github.com/ygglist/ygglist/internal/weather"
)

func main() {
	var (
		port     = flag.String("port", "8080", "HTTP server port")
		dataPath = flag.String("data", envOr("YGGLIST_DATA", "data/ygglist.json"), "path of the JSON data file (or set YGGLIST_DATA)")
		workers  = flag.Int("workers", 2, "number of import workers")
	)
	flag.Parse()

	log := logger.New()

	store, err := storage.New(*dataPath, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dataPath).Msg("Failed to open data file")
	}

	// Job infrastructure for async receipt imports.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	imp := importer.New(nfce.NewFetcher(nil), store, log)
	go func() {
		log.Info().Int("workers", *workers).Msg("Starting import workers")
		if err := jobQueue.Start(workerCtx, imp.Handle); err != nil {
			log.Error().Err(err).Msg("Import workers stopped with error")
		}
	}()

	// External API base URLs are overridable for offline development.
	weatherClient := weather.NewClient(nil,
		os.Getenv("YGGLIST_WEATHER_BASE"), os.Getenv("YGGLIST_GEOCODE_BASE"))
	holidayClient := holidays.NewClient(nil, os.Getenv("YGGLIST_HOLIDAYS_BASE"))

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:     store,
		Manager:   list.NewManager(store),
		Publisher: jobQueue,
		JobStore:  jobStore,
		Weather:   weatherClient,
		Holidays:  holidayClient,
		Log:       log,
	})

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Str("data", *dataPath).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight imports.
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
