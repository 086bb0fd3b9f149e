package main

import (
	"log"

	"prompttovideo-be/internal/bootstrap"
	"prompttovideo-be/internal/config"
	"prompttovideo-be/internal/server"
	"prompttovideo-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer - DISABLED
	// shutdownTracer := tracer.InitTracer()
	// defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Initialize Server
	// Generation jobs are consumed by cmd/worker, not here.
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
