package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prompttovideo-be/internal/bootstrap"
	"prompttovideo-be/internal/config"
	"prompttovideo-be/pkg/database"
)

// finalizeInterval is how often due challenges are ranked and paid out.
const finalizeInterval = 5 * time.Minute

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start the generation consumer
	log.Printf("Background: Starting Video Worker (concurrency=%d)...", cfg.Worker.Concurrency)
	if err := container.WorkerService.Start(); err != nil {
		log.Panicf("Unable to start video worker: %v", err)
	}

	// 5. Challenge finalization ticker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(finalizeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := container.ChallengeService.FinalizeDue(ctx); err != nil {
					log.Printf("Background Finalize Error: %v", err)
				}
			}
		}
	}()

	// 6. Block until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down worker...")
}
