package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"voicelinks/internal/models"
	"voicelinks/internal/transcribe"
	"voicelinks/internal/validation"
)

// TranscribeHandler exposes transcription and summarization.
type TranscribeHandler struct {
	client *transcribe.Client
}

// NewTranscribeHandler creates a new transcription handler.
func NewTranscribeHandler(client *transcribe.Client) *TranscribeHandler {
	return &TranscribeHandler{client: client}
}

// Transcribe downloads a recording and returns its transcription.
func (h *TranscribeHandler) Transcribe(c fiber.Ctx) error {
	var body struct {
		FileURL string `json:"fileUrl"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.FileURL == "" {
		return jsonError(c, fiber.StatusBadRequest, "File URL is required")
	}

	// The server fetches this URL itself, so block private targets.
	if valid, msg := validation.ValidateFetchURL(body.FileURL); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	text, err := h.client.Transcribe(c.Context(), body.FileURL)
	if err != nil {
		if errors.Is(err, transcribe.ErrNotConfigured) {
			return jsonError(c, fiber.StatusInternalServerError,
				"OpenAI API key not configured. Please set OPENAI_API_KEY environment variable.")
		}
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(models.TranscribeResponse{
		Success:       true,
		Transcription: text,
		Language:      "en",
		Duration:      nil,
	})
}

// Summarize generates a short title and TLDR for a transcription.
func (h *TranscribeHandler) Summarize(c fiber.Ctx) error {
	var body struct {
		Transcription string `json:"transcription"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Transcription == "" {
		return jsonError(c, fiber.StatusBadRequest, "Transcription is required")
	}

	title, tldr, err := h.client.Summarize(c.Context(), body.Transcription)
	if err != nil {
		if errors.Is(err, transcribe.ErrNotConfigured) {
			return jsonError(c, fiber.StatusInternalServerError,
				"OpenAI API key not configured. Please set OPENAI_API_KEY environment variable.")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to generate summary")
	}

	return c.JSON(models.SummaryResponse{Title: title, TLDR: tldr})
}
