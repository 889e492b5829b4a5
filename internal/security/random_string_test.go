package security

import (
	"errors"
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  error
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: ErrNegativeLength},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: ErrEmptyAlphabet},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "single alphabet character", length: 8, alphabet: "X"},
		{name: "secret alphabet", length: 64, alphabet: SecretKeyAlphabet},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("RandomString(%d, %q) expected %v, got %v", test.length, test.alphabet, test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d, want %d", test.length, test.alphabet, len(got), test.length)
			}
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString(%d, %q) produced char %q outside alphabet", test.length, test.alphabet, char)
				}
			}
		})
	}
}

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()

	secret, err := GenerateSecretKey(0)
	if err != nil {
		t.Fatalf("GenerateSecretKey returned error: %v", err)
	}
	if len(secret) != DefaultSecretKeyLength {
		t.Fatalf("expected default length %d, got %d", DefaultSecretKeyLength, len(secret))
	}

	other, err := GenerateSecretKey(0)
	if err != nil {
		t.Fatalf("GenerateSecretKey returned error: %v", err)
	}
	if secret == other {
		t.Fatalf("expected two generated secrets to differ")
	}

	short, err := GenerateSecretKey(40)
	if err != nil {
		t.Fatalf("GenerateSecretKey(40) returned error: %v", err)
	}
	if len(short) != 40 {
		t.Fatalf("expected length 40, got %d", len(short))
	}
}
