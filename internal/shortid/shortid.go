// Package shortid generates and classifies the short identifiers used as
// share-link and reply keys.
package shortid

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
)

// Base62 alphabet. With 6 characters there are 62^6 (~56.8 billion)
// possible identifiers.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ShortIDPattern matches the current identifier format.
var ShortIDPattern = regexp.MustCompile(`^[0-9A-Za-z]{6,8}$`)

// legacyPattern matches the base64url alphabet of old self-describing tokens.
var legacyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// maxUnbiasedByte is the largest multiple of len(alphabet) that fits in a
// byte. Bytes at or above it are rejected so every symbol is drawn with
// equal probability.
const maxUnbiasedByte = 256 / len(alphabet) * len(alphabet)

// Generate returns a random base62 identifier of exactly length characters,
// sourced from crypto/rand so identifiers cannot be guessed or enumerated.
func Generate(length int) (string, error) {
	return generate(length, rand.Reader)
}

func generate(length int, random io.Reader) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid identifier length %d", length)
	}

	r := bufio.NewReader(random)
	id := make([]byte, 0, length)
	for len(id) < length {
		b, err := r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		if int(b) >= maxUnbiasedByte {
			continue
		}
		id = append(id, alphabet[int(b)%len(alphabet)])
	}
	return string(id), nil
}

// IsShortID reports whether s is a current-format identifier (6-8 base62
// characters).
func IsShortID(s string) bool {
	return ShortIDPattern.MatchString(s)
}

// IsLegacyToken reports whether s looks like an old self-describing share
// token. Legacy tokens embed a JSON payload, so they are always much longer
// than a short identifier; the length band is the discriminant, since the
// two alphabets overlap.
func IsLegacyToken(s string) bool {
	return len(s) > 20 && legacyPattern.MatchString(s)
}
