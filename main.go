package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"github.com/djmorgan26/fantasy-football-assistant/config"
	"github.com/djmorgan26/fantasy-football-assistant/controller"
	"github.com/djmorgan26/fantasy-football-assistant/db"
	"github.com/djmorgan26/fantasy-football-assistant/llm"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/espn"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/sleeper"
	"github.com/djmorgan26/fantasy-football-assistant/vault"
	"github.com/djmorgan26/fantasy-football-assistant/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.DSN(), clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	v, err := vault.New(cfg.EncryptionSecret)
	if err != nil {
		log.Fatalf("error creating credential vault: %v", err)
	}

	espnClient := espn.New(cfg.SeasonYear)
	sleeperClient := sleeper.New()
	llmClient := llm.New(cfg.GroqAPIKey, cfg.GroqModel)
	if !llmClient.Available() {
		log.Printf("GROQ_API_KEY not set, LLM features run in fallback mode")
	}

	ctrl, err := controller.New(clock, db, espnClient, sleeperClient, llmClient, v)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(cfg.Port, cfg.JWTSecret, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that expires stale pending trades.
	wg.Add(1)
	go ctrl.RunPeriodicTradeExpiry(cfg.TradeExpiryFrequency, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
