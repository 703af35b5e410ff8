package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of the access token's registered claims the client
// surfaces for diagnostics. The client never verifies the signature; the
// backend is the authority and expiry still arrives as a 401.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims parses the current token without verification. Returns false when
// anonymous or when the token is not a well-formed JWT; a malformed token must
// never block requests.
func (s *Store) Claims() (TokenClaims, bool) {
	token := s.Token()
	if token == "" {
		return TokenClaims{}, false
	}

	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return TokenClaims{}, false
	}

	claims := TokenClaims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, true
}
