// Package transcribe calls the OpenAI API to transcribe recordings and to
// generate short titles and summaries from transcriptions.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	transcriptionsURL = "https://api.openai.com/v1/audio/transcriptions"
	completionsURL    = "https://api.openai.com/v1/chat/completions"

	whisperModel = "whisper-1"
	summaryModel = "gpt-4o-mini"

	// Whisper rejects uploads over 25 MB.
	maxAudioBytes = 25 << 20
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("OpenAI API key not configured")

// Client calls the transcription and summarization endpoints.
type Client struct {
	httpClient *http.Client
	apiKey     string
}

// New creates a transcription client. An empty apiKey disables the client;
// calls then fail with ErrNotConfigured.
func New(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Transcribe downloads the audio at fileURL and transcribes it with Whisper.
func (c *Client) Transcribe(ctx context.Context, fileURL string) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	audio, ext, err := c.download(ctx, fileURL)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// The part filename only needs a valid extension for format sniffing;
	// a random name avoids trusting anything derived from the remote URL.
	part, err := writer.CreateFormFile("file", uuid.NewString()+ext)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", whisperModel); err != nil {
		return "", err
	}
	if err := writer.WriteField("language", "en"); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, transcriptionsURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError("transcription", resp)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	return result.Text, nil
}

// Summarize produces a short title and TLDR for a transcription.
func (c *Client) Summarize(ctx context.Context, transcription string) (title, tldr string, err error) {
	if !c.Enabled() {
		return "", "", ErrNotConfigured
	}

	payload := map[string]any{
		"model": summaryModel,
		"messages": []map[string]string{
			{
				"role": "system",
				"content": "You summarize voice memo transcriptions. Respond with a JSON object " +
					`{"title": "...", "tldr": "..."}: a title of at most 8 words and a tldr of one or two sentences.`,
			},
			{"role": "user", "content": transcription},
		},
		"response_format": map[string]string{"type": "json_object"},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(raw))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", apiError("summary", resp)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", fmt.Errorf("failed to decode summary response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", "", errors.New("summary response contained no choices")
	}

	var summary struct {
		Title string `json:"title"`
		TLDR  string `json:"tldr"`
	}
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &summary); err != nil {
		return "", "", fmt.Errorf("failed to parse summary content: %w", err)
	}
	return summary.Title, summary.TLDR, nil
}

// download fetches the audio file and returns its bytes plus the extension
// for format sniffing.
func (c *Client) download(ctx context.Context, fileURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid file URL: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download audio file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download audio file: HTTP %s", resp.Status)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read audio file: %w", err)
	}

	ext := ".webm"
	if u, err := url.Parse(fileURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = strings.ToLower(e)
		}
	}
	return audio, ext, nil
}

func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &apiResp) == nil && apiResp.Error.Message != "" {
		return fmt.Errorf("%s failed: %s", op, apiResp.Error.Message)
	}
	return fmt.Errorf("%s failed: HTTP %s", op, resp.Status)
}
