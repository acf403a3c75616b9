package validation

import (
	"net"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTextReplyLength caps text replies.
const MaxTextReplyLength = 500

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscoreRuns      = regexp.MustCompile(`_{2,}`)
)

// audioExtensions lists the accepted upload types.
var audioExtensions = map[string]bool{
	".webm": true,
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
}

// SanitizeFilename replaces unsafe characters with underscores, collapses
// runs, and caps the length at 255.
func SanitizeFilename(filename string) string {
	s := unsafeFilenameChars.ReplaceAllString(filename, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	if len(s) > 255 {
		s = s[:255]
	}
	return s
}

// IsAudioFilename reports whether the filename has an accepted audio extension.
func IsAudioFilename(filename string) bool {
	return audioExtensions[strings.ToLower(path.Ext(filename))]
}

// RecordingIDFromURL derives a recording identifier from an audio object URL:
// the last path segment with its extension stripped.
func RecordingIDFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// ValidateTextMessage checks a text reply's message length.
func ValidateTextMessage(msg string) (bool, string) {
	if msg == "" {
		return false, "Text message is required"
	}
	if utf8.RuneCountInString(msg) > MaxTextReplyLength {
		return false, "Text message must be 500 characters or fewer"
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// IsPrivateIP checks if an IP address is in a private/reserved range.
// Used to prevent SSRF attacks against internal networks.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.IsLoopback() {
		return true
	}

	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	if ip.IsPrivate() {
		return true
	}

	if ip.IsUnspecified() {
		return true
	}

	// Cloud metadata endpoints (AWS/GCP standard, Azure)
	if ip.Equal(net.ParseIP("169.254.169.254")) || ip.Equal(net.ParseIP("168.63.129.16")) {
		return true
	}

	return false
}

// IsPrivateHost checks if a hostname resolves to a private IP address.
// Returns true if the host is private/blocked, false if it's safe to access.
func IsPrivateHost(host string) (bool, error) {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		// If we can't resolve, be conservative and block
		return true, err
	}

	for _, ip := range ips {
		if IsPrivateIP(ip) {
			return true, nil
		}
	}

	return false, nil
}

// ValidateFetchURL validates a URL the server will download itself.
// Blocks private IPs, localhost, and cloud metadata endpoints.
func ValidateFetchURL(urlStr string) (bool, string) {
	valid, msg := ValidateURL(urlStr)
	if !valid {
		return false, msg
	}

	u, _ := url.Parse(urlStr)

	isPrivate, err := IsPrivateHost(u.Host)
	if err != nil {
		return false, "Cannot resolve hostname"
	}
	if isPrivate {
		return false, "URL points to a private or reserved IP address"
	}

	return true, ""
}
