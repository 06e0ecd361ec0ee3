package apikey

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	// EnvLive marks production keys
	EnvLive = "live"
	// EnvTest marks sandbox keys
	EnvTest = "test"

	// DefaultByteLength is the number of random bytes per secret (64 hex chars)
	DefaultByteLength = 32

	// MaskPlaceholder is returned for secrets too short to mask safely
	MaskPlaceholder = "****"
)

// secretPattern matches a well-formed secret: env tag + 64 lowercase hex chars
var secretPattern = regexp.MustCompile(`^(live|test)_[0-9a-f]{64}$`)

var randRead = rand.Read

// Generate returns a new secret of the form "<envTag>_<hex>" drawn from
// crypto/rand. byteLength <= 0 falls back to DefaultByteLength.
func Generate(envTag string, byteLength int) (string, error) {
	if envTag != EnvLive && envTag != EnvTest {
		return "", fmt.Errorf("invalid env tag: %s", envTag)
	}
	if byteLength <= 0 {
		byteLength = DefaultByteLength
	}

	b := make([]byte, byteLength)
	if _, err := randRead(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return envTag + "_" + hex.EncodeToString(b), nil
}

// IsValidFormat reports whether secret has the shape "<live|test>_<64 hex>".
// Used as a cheap pre-check before any store lookup.
func IsValidFormat(secret string) bool {
	return secretPattern.MatchString(secret)
}

// ExtractEnvTag returns the env tag of a well-formed secret.
func ExtractEnvTag(secret string) (string, bool) {
	if !IsValidFormat(secret) {
		return "", false
	}
	tag, _, _ := strings.Cut(secret, "_")
	return tag, true
}

// Mask returns a display-only form of the secret: first 8 and last 4
// characters joined by "...". Secrets shorter than 12 characters get a
// fixed placeholder. The result is never usable for lookup.
func Mask(secret string) string {
	if len(secret) < 12 {
		return MaskPlaceholder
	}
	return secret[:8] + "..." + secret[len(secret)-4:]
}
