package server

import (
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voicelinks/internal/handlers/api"
	"voicelinks/internal/storage"
	"voicelinks/internal/store"
	"voicelinks/internal/transcribe"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(kv *store.RedisKV, recordings *storage.S3Storage, transcriber *transcribe.Client) {
	links := store.NewLinkStore(kv)
	threads := store.NewThreadStore(kv)

	// Initialize handlers
	shareLinkHandler := api.NewShareLinkHandler(links, s.Cfg)
	replyHandler := api.NewReplyHandler(threads)
	recordingHandler := api.NewRecordingHandler(recordings)
	transcribeHandler := api.NewTranscribeHandler(transcriber)
	healthHandler := api.NewHealthHandler(s.Cfg, kv)

	// Share link routes
	s.App.Post("/api/create-share-link", shareLinkHandler.Create)
	s.App.Get("/api/get-share-link", shareLinkHandler.Resolve)

	// Reply thread routes
	s.App.Post("/api/recordings/:recordingId/replies", replyHandler.Append)
	s.App.Get("/api/recordings/:recordingId/replies", replyHandler.List)
	s.App.Get("/api/recordings/:recordingId/thread", replyHandler.Summary)

	// Recording storage routes
	s.App.Post("/api/get-upload-url", recordingHandler.UploadURL)
	s.App.Post("/api/move-to-shared", recordingHandler.MoveToShared)
	s.App.Get("/api/recordings", recordingHandler.List)
	s.App.Delete("/api/recordings/:filename", recordingHandler.Delete)

	// Transcription routes
	s.App.Post("/api/transcribe", transcribeHandler.Transcribe)
	s.App.Post("/api/summarize", transcribeHandler.Summarize)

	// Health and metrics
	s.App.Get("/api/health", healthHandler.Health)
	s.App.Get("/healthz", healthHandler.Liveness)
	s.App.Get("/readyz", healthHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Short links open the player page, which resolves the hash client-side
	s.App.Get("/s/:hash", s.playerPage)

	// Static frontend assets
	s.App.Get("/*", static.New(s.Cfg.PublicDir))
}

func (s *Server) playerPage(c fiber.Ctx) error {
	return c.SendFile(filepath.Join(s.Cfg.PublicDir, "player.html"))
}
