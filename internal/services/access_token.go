package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenPurpose    = "journal_access"
	defaultAccessTokenTTL = 30 * 24 * time.Hour
)

var (
	ErrAccessTokenMissing        = errors.New("missing access token")
	ErrAccessTokenInvalid        = errors.New("invalid access token")
	ErrAccessTokenInvalidPurpose = errors.New("invalid access token purpose")
	ErrAccessTokenExpired        = errors.New("expired access token")
	ErrAccessTokenInvalidSubject = errors.New("invalid access token subject")
)

type AccessClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func BuildAccessToken(secretKey []byte, subject string, ttl time.Duration, now time.Time) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrAccessTokenInvalidSubject
	}
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := AccessClaims{
		Purpose: accessTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseAccessToken verifies signature, purpose and expiry against now. The
// library's own clock check is disabled so callers control time.
func ParseAccessToken(secretKey []byte, rawToken string, now time.Time) (*AccessClaims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, ErrAccessTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return nil, ErrAccessTokenInvalid
	}
	if claims.Purpose != accessTokenPurpose {
		return nil, ErrAccessTokenInvalidPurpose
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(now) {
		return nil, ErrAccessTokenExpired
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrAccessTokenInvalidSubject
	}
	return claims, nil
}
