package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRequestID creates a short, human-readable id for correlating a price feed request in logs.
// Format: {endpoint}-{8charHexUUID}
//
// Example:
//   - Input: path="/api/v1/osrs/latest"
//   - Output: "latest-a3f8e2b1"
func GenerateRequestID(path string) string {
	return endpointName(path) + "-" + generateShortUUID()
}

// endpointName keeps the last non-empty path segment
//   - "/api/v1/osrs/latest" -> "latest"
//   - "/mapping/" -> "mapping"
//   - "" -> "request"
func endpointName(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return "request"
	}
	return segments[len(segments)-1]
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
