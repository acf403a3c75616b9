package models

import "time"

// ShareLink is the durable record addressed by a short identifier.
// Optional fields are pointers so that absence serializes as JSON null.
type ShareLink struct {
	URL           string    `json:"url"`
	Title         *string   `json:"title"`
	Transcription *string   `json:"transcription"`
	TLDR          *string   `json:"tldr"`
	Duration      *float64  `json:"duration"`
	RecordingID   string    `json:"recordingId,omitempty"`
	Created       time.Time `json:"created"`
	Clicks        int64     `json:"clicks"`
}

// ShareLinkData is the resolved payload returned to clients, for both
// current-format identifiers and decoded legacy tokens.
type ShareLinkData struct {
	URL           string   `json:"url"`
	Title         *string  `json:"title"`
	Transcription *string  `json:"transcription"`
	TLDR          *string  `json:"tldr"`
	Duration      *float64 `json:"duration"`
}

// Data projects the stored record onto the client payload.
func (l *ShareLink) Data() ShareLinkData {
	return ShareLinkData{
		URL:           l.URL,
		Title:         l.Title,
		Transcription: l.Transcription,
		TLDR:          l.TLDR,
		Duration:      l.Duration,
	}
}
