package main

import (
	"context"
	"log"

	"tsai-chat-be/internal/bootstrap"
	"tsai-chat-be/internal/config"
	"tsai-chat-be/internal/server"
	"tsai-chat-be/internal/tracer"
	"tsai-chat-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// The ingestion consumer runs detached from any request lifetime; jobs in
	// flight at shutdown are abandoned.
	go func() {
		log.Println("Background: Starting Ingestion Service...")
		if err := container.IngestionService.Consume(context.Background()); err != nil {
			log.Printf("Background Ingestion Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
