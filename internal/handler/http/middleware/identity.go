package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys the handlers read the acting identity from.
const (
	SessionIDKey = "sessionID"
	ProfileIDKey = "profileID"
)

// Identity extracts the acting identity from the request: the anonymous
// session id from the X-Session-ID header or the session_id cookie, and
// the authenticated profile id from an optional bearer token. The
// middleware is lenient; the usecase layer rejects requests that lack a
// mandatory session id. Token issuance belongs to the identity provider,
// this only parses.
func Identity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			if cookie, err := c.Cookie("session_id"); err == nil {
				sessionID = cookie
			}
		}
		c.Set(SessionIDKey, sessionID)

		if profileID := profileFromBearer(c.GetHeader("Authorization"), jwtSecret); profileID != "" {
			c.Set(ProfileIDKey, profileID)
		}

		c.Next()
	}
}

// profileFromBearer parses the profile id out of a bearer token. Invalid
// or absent tokens yield an anonymous request, not an error.
func profileFromBearer(header, jwtSecret string) string {
	if jwtSecret == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.Subject
}
