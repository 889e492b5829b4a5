package services

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var ErrEmptySubject = errors.New("empty subject")

const userKeyLength = 24

// UserKeyForSubject derives the opaque storage namespace for an identity
// subject. Subjects are compared case-insensitively.
func UserKeyForSubject(subject string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(subject))
	if normalized == "" {
		return "", ErrEmptySubject
	}
	sum := blake2b.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:userKeyLength], nil
}
