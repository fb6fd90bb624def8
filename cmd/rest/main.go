package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bible-study-be/internal/bootstrap"
	"bible-study-be/internal/config"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/server"
	"bible-study-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] Invalid configuration: %v", err)
	}

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	container, err := bootstrap.NewContainer(context.Background(), cfg, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to bootstrap: %v", err)
	}
	defer container.Close()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 5. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
