package main

import (
	"context"
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
	schedule := flag.String("schedule", "", "cron spec (five fields); empty runs one pass and exits")
	runNow := flag.Bool("now", false, "with -schedule, run one pass immediately before scheduling")
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

	log.Printf("env=%s storage=%s tickers from %s", cfg.Environment, cfg.Storage.Driver, cfg.Constituents.URL)

	// Wire DI: Initialize all dependencies
	fetch, err := di.InitializeFetch(cfg)
	if err != nil {
		log.Fatalf("fetch initialization failed: %v", err)
	}

	if *schedule != "" {
		err = fetch.RunScheduled(*schedule, *runNow)
	} else {
		err = fetch.RunOnce(context.Background())
	}

	fetch.Close()
	if err != nil {
		log.Printf("ingest error: %v", err)
		os.Exit(1)
	}
}
