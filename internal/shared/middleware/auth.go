package middleware

import (
	"strings"

	"newsapi-backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const callerKey = "caller"

// TokenVerifier resolves a bearer token to a publisher id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>" header.
// Any other shape yields ok=false.
func ExtractBearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// OptionalAuth resolves the caller once per request and never aborts.
// Missing, malformed or invalid tokens leave the request anonymous;
// operations that need an identity reject it themselves.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := shared.Anonymous

		if token, ok := ExtractBearerToken(c.GetHeader("Authorization")); ok {
			caller = resolveCaller(c, verifier, token)
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

func resolveCaller(c *gin.Context, verifier TokenVerifier, token string) shared.Caller {
	subject, err := verifier.Verify(token)
	if err != nil {
		log.Debug().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg("ignoring invalid bearer token")
		return shared.Anonymous
	}

	publisherID, err := uuid.Parse(subject)
	if err != nil {
		return shared.Anonymous
	}

	return shared.NewCaller(publisherID)
}

// CallerFrom returns the identity resolved by OptionalAuth
func CallerFrom(c *gin.Context) shared.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(shared.Caller); ok {
			return caller
		}
	}
	return shared.Anonymous
}
