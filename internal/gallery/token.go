package gallery

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt"
)

// ValidateToken checks that token looks like a JWT with typ and alg headers.
// The signature is not verified; an expired token only logs a warning.
func ValidateToken(token string) error {
	if len(token) < 20 {
		return fmt.Errorf("auth token is too short")
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		return fmt.Errorf("auth token should be a JWT with 3 parts separated by dots")
	}

	claims := jwt.MapClaims{}
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, claims)
	if err != nil {
		return fmt.Errorf("auth token is not a valid JWT: %w", err)
	}

	if _, ok := parsed.Header["typ"]; !ok {
		return fmt.Errorf("auth token header is missing typ")
	}
	if _, ok := parsed.Header["alg"]; !ok {
		return fmt.Errorf("auth token header is missing alg")
	}

	if exp, ok := claims["exp"].(float64); ok {
		expiresAt := time.Unix(int64(exp), 0)
		if time.Now().After(expiresAt) {
			slog.Warn("Auth token has expired, uploads will likely fail with 401", "expired_at", expiresAt)
		}
	}

	return nil
}

// SafeName turns a landmark name into a filename stem
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimRight(b.String(), " "), " ", "_")
}
