package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"StockScope/internal/di"
	"StockScope/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "config file path")
	flag.Parse()

	// .env is optional; system env wins either way
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s storage=%s port=%d", cfg.Environment, cfg.Storage.Driver, cfg.Server.Port)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
