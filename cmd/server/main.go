package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"voicelinks/internal/config"
	"voicelinks/internal/server"
	"voicelinks/internal/storage"
	"voicelinks/internal/store"
	"voicelinks/internal/transcribe"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize the durable store
	kv, err := store.NewRedisKV(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer kv.Close()

	// Initialize recording storage
	recordings, err := storage.New(ctx, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatalf("Failed to initialize recording storage: %v", err)
	}

	transcriber := transcribe.New(cfg.OpenAIAPIKey)
	if !cfg.TranscriptionEnabled() {
		log.Println("Transcription is disabled. Set OPENAI_API_KEY to enable.")
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(kv, recordings, transcriber)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
