package iacrm

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The client never holds verification keys; it only needs the exp claim to
// judge whether a locally stored token is still worth attaching.
var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// tokenValid reports whether raw carries an expiry claim later than now plus
// skew. A structurally invalid token counts as expired.
func tokenValid(raw string, now time.Time, skew time.Duration) bool {
	if raw == "" {
		return false
	}
	exp, ok := tokenExpiry(raw)
	if !ok {
		return false
	}
	return now.Add(skew).Before(exp)
}
