package models

// Reply types.
const (
	ReplyTypeVoice = "voice"
	ReplyTypeText  = "text"
)

// Reply is one entry in a recording's thread. Replies are immutable after
// creation; a thread is read back ordered by Timestamp ascending.
//
// For text replies the message is stored in Transcription, Duration is 0,
// and URL/ShareURL are null.
type Reply struct {
	ID            string   `json:"id"`
	RecordingID   string   `json:"recordingId"`
	Type          string   `json:"type"`
	URL           *string  `json:"url"`
	ShareURL      *string  `json:"shareUrl"`
	Transcription *string  `json:"transcription"`
	Duration      *float64 `json:"duration"`
	Timestamp     string   `json:"timestamp"`
}
