package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/devhire/devhire/api"
	migrations "github.com/devhire/devhire/db"
	"github.com/devhire/devhire/internal/config"
	"github.com/devhire/devhire/internal/db"
	"github.com/devhire/devhire/internal/matching"
	"github.com/devhire/devhire/internal/repository/sqlite"
	"github.com/devhire/devhire/pkg/chain"
	"github.com/devhire/devhire/pkg/llm"
	"github.com/joho/godotenv"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	llm.SetLogger(logger)

	log.Printf("Starting devhire server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, migrations.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	repo := sqlite.New(database, logger)

	// Completion client is optional: without it the matching engine runs in
	// fallback-only mode.
	var engineClient matching.Completer
	llmClient, err := llm.NewDefaultClient(cfg.LLM)
	if err != nil {
		log.Printf("LLM client disabled: %v", err)
	} else {
		engineClient = llmClient
		defer llmClient.Close()
	}
	engine := matching.NewEngine(engineClient, cfg.LLM.Model, logger)

	// Chain verifier is optional the same way: without it only free postings
	// can settle.
	var verifier chain.Verifier
	if cfg.Payment.ChainRPCURL != "" {
		chainClient, err := chain.Dial(ctx, cfg.Payment.ChainRPCURL)
		if err != nil {
			log.Printf("Chain verifier disabled: %v", err)
		} else {
			verifier = chainClient
			defer chainClient.Close()
		}
	}

	handler := api.SetupRoutes(cfg, version, buildTime, api.Deps{
		Users:    repo,
		Jobs:     repo,
		Txs:      repo,
		Engine:   engine,
		Verifier: verifier,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
