package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// SecretKeyAlphabet excludes characters that need quoting in .env and YAML files.
const SecretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// DefaultSecretKeyLength stays above the minimum accepted by the config loader.
const DefaultSecretKeyLength = 48

var (
	ErrNegativeLength = errors.New("length must be non-negative")
	ErrEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", ErrNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", ErrEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// GenerateSecretKey returns a signing secret for auth.secret_key.
// Non-positive lengths fall back to DefaultSecretKeyLength.
func GenerateSecretKey(length int) (string, error) {
	if length <= 0 {
		length = DefaultSecretKeyLength
	}
	return RandomString(length, SecretKeyAlphabet)
}
