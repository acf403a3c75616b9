package models

import "time"

// CreateShareLinkResponse is returned after minting a short link.
type CreateShareLinkResponse struct {
	ShortURL string `json:"shortUrl"`
	Hash     string `json:"hash"`
}

// AppendReplyResponse is returned after appending a reply to a thread.
type AppendReplyResponse struct {
	ReplyID string `json:"replyId"`
	Type    string `json:"type"`
}

// RepliesResponse wraps a recording's ordered thread.
type RepliesResponse struct {
	Replies []Reply `json:"replies"`
}

// ThreadSummaryResponse reports the thread plus its authoritative count.
// ReplyCount comes from the index cardinality and may exceed len(Replies)
// when some reply bodies have already expired.
type ThreadSummaryResponse struct {
	RecordingID string  `json:"recordingId"`
	ReplyCount  int64   `json:"replyCount"`
	Replies     []Reply `json:"replies"`
}

// UploadURLResponse carries a presigned upload target.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	Filename  string `json:"filename"`
}

// MoveToSharedResponse is returned after promoting an upload to the
// public shared folder.
type MoveToSharedResponse struct {
	Success      bool   `json:"success"`
	ShareableURL string `json:"shareableUrl"`
	Filename     string `json:"filename"`
}

// Recording describes one object in the shared folder.
type Recording struct {
	Filename     string    `json:"filename"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}

// RecordingsResponse wraps the shared-folder listing.
type RecordingsResponse struct {
	Recordings []Recording `json:"recordings"`
}

// TranscribeResponse is the transcription result.
type TranscribeResponse struct {
	Success       bool     `json:"success"`
	Transcription string   `json:"transcription"`
	Language      string   `json:"language"`
	Duration      *float64 `json:"duration"`
}

// SummaryResponse carries an AI-generated title and TLDR for a transcription.
type SummaryResponse struct {
	Title string `json:"title"`
	TLDR  string `json:"tldr"`
}
