package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"voicelinks/internal/metrics"
	"voicelinks/internal/models"
	"voicelinks/internal/store"
	"voicelinks/internal/validation"
)

// ReplyHandler manages a recording's reply thread.
type ReplyHandler struct {
	threads *store.ThreadStore
}

// NewReplyHandler creates a new reply handler.
func NewReplyHandler(threads *store.ThreadStore) *ReplyHandler {
	return &ReplyHandler{threads: threads}
}

// Append adds a voice or text reply to a recording's thread.
func (h *ReplyHandler) Append(c fiber.Ctx) error {
	recordingID := c.Params("recordingId")
	if recordingID == "" {
		return jsonError(c, fiber.StatusBadRequest, "Recording ID is required")
	}

	var body struct {
		Type          string   `json:"type"`
		ReplyURL      string   `json:"replyUrl"`
		ReplyShareURL string   `json:"replyShareUrl"`
		TextMessage   string   `json:"textMessage"`
		Transcription *string  `json:"transcription"`
		Duration      *float64 `json:"duration"`
		Timestamp     string   `json:"timestamp"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	replyType := body.Type
	if replyType == "" {
		if body.TextMessage != "" {
			replyType = models.ReplyTypeText
		} else {
			replyType = models.ReplyTypeVoice
		}
	}

	var reply models.Reply
	switch replyType {
	case models.ReplyTypeVoice:
		if body.ReplyURL == "" {
			return jsonError(c, fiber.StatusBadRequest, "Reply URL is required")
		}
		shareURL := body.ReplyShareURL
		if shareURL == "" {
			shareURL = body.ReplyURL
		}
		reply = models.Reply{
			Type:          models.ReplyTypeVoice,
			URL:           &body.ReplyURL,
			ShareURL:      &shareURL,
			Transcription: body.Transcription,
			Duration:      body.Duration,
			Timestamp:     body.Timestamp,
		}
	case models.ReplyTypeText:
		if valid, msg := validation.ValidateTextMessage(body.TextMessage); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
		duration := 0.0
		reply = models.Reply{
			Type:          models.ReplyTypeText,
			Transcription: &body.TextMessage,
			Duration:      &duration,
			Timestamp:     body.Timestamp,
		}
	default:
		return jsonError(c, fiber.StatusBadRequest, "Reply type must be voice or text")
	}

	id, err := h.threads.Append(c.Context(), recordingID, &reply)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidTimestamp):
			return jsonError(c, fiber.StatusBadRequest, "Invalid timestamp")
		case errors.Is(err, store.ErrStoreUnavailable):
			return jsonError(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "Failed to save reply")
		}
	}

	metrics.RepliesAppended.WithLabelValues(reply.Type).Inc()

	return c.JSON(models.AppendReplyResponse{
		ReplyID: id,
		Type:    reply.Type,
	})
}

// List returns a recording's replies in timestamp order. A recording with
// no thread yields an empty list, not an error.
func (h *ReplyHandler) List(c fiber.Ctx) error {
	recordingID := c.Params("recordingId")
	if recordingID == "" {
		return jsonError(c, fiber.StatusBadRequest, "Recording ID is required")
	}

	replies, err := h.threads.GetThread(c.Context(), recordingID)
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch replies")
	}

	return c.JSON(models.RepliesResponse{Replies: replies})
}

// Summary returns the thread plus the authoritative reply count.
func (h *ReplyHandler) Summary(c fiber.Ctx) error {
	recordingID := c.Params("recordingId")
	if recordingID == "" {
		return jsonError(c, fiber.StatusBadRequest, "Recording ID is required")
	}

	replies, count, err := h.threads.GetThreadWithCount(c.Context(), recordingID)
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch thread")
	}

	return c.JSON(models.ThreadSummaryResponse{
		RecordingID: recordingID,
		ReplyCount:  count,
		Replies:     replies,
	})
}
