package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds session and object identifiers.
const maxIDLength = 128

// ValidateSessionID checks that a session key is safe to use as a file name
// or a store key.
//
// The rules are conservative:
//   - No empty IDs
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSessionID, "session id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidSessionID, "session id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSessionID, "session id contains invalid characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidSessionID, "session id contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateObjectID checks that a canvas object identifier is usable.
func ValidateObjectID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidDocument, "object id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidDocument, "object id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "object id contains invalid control characters")
		}
	}
	return nil
}
