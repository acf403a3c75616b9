// Package legacy implements the old self-describing share-token format.
//
// Before short identifiers existed, share links carried their entire payload
// in the URL: a compact JSON object, base64url-encoded with padding stripped.
// Decoding needs no store lookup, so these tokens keep working forever.
package legacy

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"

	"voicelinks/internal/models"
)

// ErrCorruptToken is returned when a legacy token cannot be decoded.
var ErrCorruptToken = errors.New("invalid or corrupted share link")

// payload is the compact wire form. Short keys keep tokens as small as the
// format allows.
type payload struct {
	U  *string  `json:"u,omitempty"`
	T  *string  `json:"t,omitempty"`
	TR *string  `json:"tr,omitempty"`
	D  *float64 `json:"d,omitempty"`
}

// Encode serializes a link's data into a legacy token. Absent, empty, and
// zero optional fields are dropped from the payload entirely; Decode
// restores them as null.
func Encode(data models.ShareLinkData) (string, error) {
	p := payload{U: &data.URL}
	if data.Title != nil && *data.Title != "" {
		p.T = data.Title
	}
	if data.Transcription != nil && *data.Transcription != "" {
		p.TR = data.Transcription
	}
	if d := data.Duration; d != nil && *d != 0 && !math.IsNaN(*d) && !math.IsInf(*d, 0) {
		p.D = d
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. Missing optional fields come back as nil so they
// serialize as explicit JSON nulls. Malformed tokens fail with
// ErrCorruptToken, never with partial data.
func Decode(token string) (models.ShareLinkData, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return models.ShareLinkData{}, ErrCorruptToken
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.ShareLinkData{}, ErrCorruptToken
	}
	if p.U == nil || *p.U == "" {
		return models.ShareLinkData{}, ErrCorruptToken
	}

	data := models.ShareLinkData{URL: *p.U}
	if p.T != nil && *p.T != "" {
		data.Title = p.T
	}
	if p.TR != nil && *p.TR != "" {
		data.Transcription = p.TR
	}
	if p.D != nil && *p.D != 0 {
		data.Duration = p.D
	}
	return data, nil
}
