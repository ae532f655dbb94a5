package main

import (
	"context"
	"log"

	"college-portal-be/internal/bootstrap"
	"college-portal-be/internal/config"
	"college-portal-be/internal/server"
	"college-portal-be/internal/tracer"
	"college-portal-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting chatbot archiver...")
		if err := container.ArchiverService.Consume(context.Background()); err != nil {
			log.Printf("Background archiver error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting pending-request sweeper...")
		container.SweeperService.Run(context.Background())
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
