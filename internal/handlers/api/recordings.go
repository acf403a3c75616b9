package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"voicelinks/internal/models"
	"voicelinks/internal/storage"
	"voicelinks/internal/validation"
)

// RecordingHandler manages recording objects in storage.
type RecordingHandler struct {
	storage *storage.S3Storage
}

// NewRecordingHandler creates a new recording handler.
func NewRecordingHandler(s *storage.S3Storage) *RecordingHandler {
	return &RecordingHandler{storage: s}
}

// UploadURL presigns an upload target for a new recording.
func (h *RecordingHandler) UploadURL(c fiber.Ctx) error {
	var body struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Filename == "" {
		return jsonError(c, fiber.StatusBadRequest, "Filename is required")
	}
	if !validation.IsAudioFilename(body.Filename) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid file type. Only audio files are allowed.")
	}

	filename := validation.SanitizeFilename(body.Filename)
	uploadURL, key, err := h.storage.PresignUpload(c.Context(), filename, body.ContentType)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to generate upload URL")
	}

	return c.JSON(models.UploadURLResponse{
		UploadURL: uploadURL,
		Key:       key,
		Filename:  filename,
	})
}

// MoveToShared promotes an uploaded recording to the public shared folder.
func (h *RecordingHandler) MoveToShared(c fiber.Ctx) error {
	var body struct {
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Filename == "" {
		return jsonError(c, fiber.StatusBadRequest, "Filename is required")
	}

	filename := validation.SanitizeFilename(body.Filename)
	shareableURL, err := h.storage.MoveToShared(c.Context(), filename)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to move file to shared folder")
	}

	return c.JSON(models.MoveToSharedResponse{
		Success:      true,
		ShareableURL: shareableURL,
		Filename:     filename,
	})
}

// List returns the shared recordings, most recent first.
func (h *RecordingHandler) List(c fiber.Ctx) error {
	recordings, err := h.storage.ListRecordings(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to list recordings")
	}

	return c.JSON(models.RecordingsResponse{Recordings: recordings})
}

// Delete removes a recording from the shared folder.
func (h *RecordingHandler) Delete(c fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" {
		return jsonError(c, fiber.StatusBadRequest, "Filename is required")
	}

	if err := h.storage.Delete(c.Context(), validation.SanitizeFilename(filename)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete recording")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Recording deleted successfully",
	})
}
