package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/threatlens/threatlens/internal/collector"
	"github.com/threatlens/threatlens/internal/config"
	"github.com/threatlens/threatlens/internal/cve"
	"github.com/threatlens/threatlens/internal/mitre"
	"github.com/threatlens/threatlens/internal/pipeline"
	"github.com/threatlens/threatlens/internal/search"
	"github.com/threatlens/threatlens/internal/server"
	"github.com/threatlens/threatlens/internal/storage"
	"github.com/threatlens/threatlens/internal/summarize"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting ThreatLens")

	// The rule table is required; the pipeline must not come up without it
	rules, err := mitre.LoadRules(cfg.RulesPath)
	if err != nil {
		logrus.Fatalf("Failed to load MITRE rule table: %v", err)
	}

	// Initialize report storage
	store, err := storage.NewBoltStore(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to open report store: %v", err)
	}
	defer store.Close()

	// Initialize the full-text search index
	index, err := search.Open(cfg.IndexPath)
	if err != nil {
		logrus.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	// Build the ingestion pipeline
	truncator := summarize.NewTruncator(cfg.SummaryMaxChars)
	var summarizer summarize.Summarizer = truncator
	if cfg.HFAPIToken != "" {
		summarizer = summarize.NewHuggingFace(cfg.HFAPIToken, cfg.HFModel, cfg.SummaryMaxChars)
		logrus.Info("Using hosted summarization model with truncation fallback")
	}

	fetcher := collector.NewPageClient(cfg.FetchTimeout)
	assembler := collector.NewAssembler(fetcher, cfg.SummaryThreshold)
	pipe := pipeline.NewService(assembler, rules, summarizer, truncator, store, index)

	// Set up the HTTP API
	api := server.New(collector.NewRSSCollector(), pipe, store, index, cve.NewClient())

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(api.Router())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
