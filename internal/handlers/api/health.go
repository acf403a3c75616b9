package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"voicelinks/internal/config"
)

// Pinger checks connectivity to the durable store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the health and probe endpoints.
type HealthHandler struct {
	cfg *config.Config
	kv  Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg *config.Config, kv Pinger) *HealthHandler {
	return &HealthHandler{cfg: cfg, kv: kv}
}

// Health reports service status and enabled features.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"bucket": h.cfg.S3Bucket,
		"region": h.cfg.S3Region,
		"features": fiber.Map{
			"transcription": h.cfg.TranscriptionEnabled(),
		},
	})
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the application can serve traffic (store is reachable).
func (h *HealthHandler) Readiness(c fiber.Ctx) error {
	if err := h.kv.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "store unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
