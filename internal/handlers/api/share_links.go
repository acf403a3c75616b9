package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"voicelinks/internal/config"
	"voicelinks/internal/legacy"
	"voicelinks/internal/metrics"
	"voicelinks/internal/models"
	"voicelinks/internal/shortid"
	"voicelinks/internal/store"
)

// shortLinkPrefix is the path prefix of player short URLs.
const shortLinkPrefix = "/s/"

// ShareLinkHandler mints and resolves share links.
type ShareLinkHandler struct {
	links *store.LinkStore
	cfg   *config.Config
}

// NewShareLinkHandler creates a new share link handler.
func NewShareLinkHandler(links *store.LinkStore, cfg *config.Config) *ShareLinkHandler {
	return &ShareLinkHandler{links: links, cfg: cfg}
}

// Create mints a short identifier for a recording and returns the share URL.
func (h *ShareLinkHandler) Create(c fiber.Ctx) error {
	var body struct {
		URL           string   `json:"url"`
		Title         *string  `json:"title"`
		Transcription *string  `json:"transcription"`
		TLDR          *string  `json:"tldr"`
		Duration      *float64 `json:"duration"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.URL == "" {
		return jsonError(c, fiber.StatusBadRequest, "URL is required")
	}

	id, err := h.links.Create(c.Context(), models.ShareLinkData{
		URL:           body.URL,
		Title:         body.Title,
		Transcription: body.Transcription,
		TLDR:          body.TLDR,
		Duration:      body.Duration,
	})
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create share link")
	}

	metrics.ShareLinksCreated.Inc()

	return c.JSON(models.CreateShareLinkResponse{
		ShortURL: h.shortURL(c, id),
		Hash:     id,
	})
}

// Resolve returns the link data behind a hash. The hash is either a
// current-format short identifier (store lookup) or a legacy self-describing
// token (pure decode); the classifier decides, never trial-and-error.
func (h *ShareLinkHandler) Resolve(c fiber.Ctx) error {
	hash := c.Query("hash")
	if hash == "" {
		return jsonError(c, fiber.StatusBadRequest, "Hash is required")
	}

	switch {
	case shortid.IsShortID(hash):
		record, err := h.links.Get(c.Context(), hash)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrLinkNotFound):
				metrics.ShareLinkResolves.WithLabelValues(metrics.FormatShortID, metrics.OutcomeNotFound).Inc()
				return jsonError(c, fiber.StatusNotFound, "Link not found or expired")
			case errors.Is(err, store.ErrStoreUnavailable):
				metrics.ShareLinkResolves.WithLabelValues(metrics.FormatShortID, metrics.OutcomeError).Inc()
				return jsonError(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable")
			default:
				metrics.ShareLinkResolves.WithLabelValues(metrics.FormatShortID, metrics.OutcomeError).Inc()
				return jsonError(c, fiber.StatusInternalServerError, "Failed to retrieve share link")
			}
		}

		// Count the click off the request path; a lost increment never
		// delays or fails the resolve.
		go h.countClick(hash)

		metrics.ShareLinkResolves.WithLabelValues(metrics.FormatShortID, metrics.OutcomeOK).Inc()
		return c.JSON(record.Data())

	case shortid.IsLegacyToken(hash):
		data, err := legacy.Decode(hash)
		if err != nil {
			metrics.ShareLinkResolves.WithLabelValues(metrics.FormatLegacy, metrics.OutcomeCorrupt).Inc()
			return jsonError(c, fiber.StatusBadRequest, "Invalid or corrupted share link")
		}
		metrics.ShareLinkResolves.WithLabelValues(metrics.FormatLegacy, metrics.OutcomeOK).Inc()
		return c.JSON(data)

	default:
		metrics.ShareLinkResolves.WithLabelValues(metrics.FormatUnknown, metrics.OutcomeInvalid).Inc()
		return jsonError(c, fiber.StatusBadRequest, "Invalid share link format")
	}
}

func (h *ShareLinkHandler) countClick(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.links.IncrementClicks(ctx, id); err != nil {
		metrics.ClickIncrementFailures.Inc()
		slog.Error("failed to increment click counter", "id", id, "error", err)
	}
}

// shortURL builds the fully qualified short URL from the request's declared
// origin, falling back to the host header and then the configured base URL.
func (h *ShareLinkHandler) shortURL(c fiber.Ctx, id string) string {
	origin := c.Get("Origin")
	if origin == "" {
		origin = c.Hostname()
	}
	if origin == "" {
		origin = h.cfg.BaseURL
	}
	if !strings.HasPrefix(origin, "http") {
		origin = "https://" + origin
	}
	return origin + shortLinkPrefix + id
}
