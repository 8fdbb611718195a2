package middleware

import (
	"net/http"
	"strings"

	"goshortly/tokens"

	"github.com/gin-gonic/gin"
)

// Policy decides what happens when a request carries no usable token.
type Policy int

const (
	// Required rejects the request with 401 before the handler runs.
	Required Policy = iota
	// Optional treats a missing or invalid token as an anonymous request;
	// it never rejects on auth grounds.
	Optional
)

const subjectKey = "auth.subject"

// Auth resolves the bearer token per the given policy and exposes the
// verified subject id to downstream handlers.
func Auth(issuer *tokens.Issuer, policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyHeader(issuer, c.GetHeader("Authorization"))
		if err != nil {
			if policy == Required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Next()
			return
		}
		SetSubject(c, claims.UserId)
		c.Next()
	}
}

// SetSubject stores the acting identity on the request context. Exposed so
// handler tests can simulate an authenticated request.
func SetSubject(c *gin.Context, id string) {
	c.Set(subjectKey, id)
}

func verifyHeader(issuer *tokens.Issuer, header string) (*tokens.Claims, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, tokens.ErrInvalidToken
	}
	return issuer.Verify(strings.TrimPrefix(header, prefix))
}

// Subject returns the authenticated user id, if the guard resolved one.
func Subject(c *gin.Context) (string, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
