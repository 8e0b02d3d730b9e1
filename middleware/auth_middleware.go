package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set after token verification.
const (
	ContextUID     = "uid"
	ContextName    = "name"
	ContextEmail   = "email"
	ContextPicture = "picture"
)

// RequireAuth verifies the Firebase ID token from the Authorization
// header. A missing or invalid token aborts with 401; the response body
// signals the client to show the sign-in prompt rather than an error
// toast.
func RequireAuth(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign-in required", "signIn": true})
			return
		}

		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if idToken == "" || idToken == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign-in required", "signIn": true})
			return
		}

		token, err := authClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token", "signIn": true})
			return
		}

		setClaims(c, token)
		c.Next()
	}
}

// OptionalAuth verifies a token when one is supplied but lets the
// request through either way. Used by the report route, where an
// anonymous reporter is acceptable.
func OptionalAuth(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if idToken != "" && idToken != authHeader {
			if token, err := authClient.VerifyIDToken(c.Request.Context(), idToken); err == nil {
				setClaims(c, token)
			}
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, token *auth.Token) {
	c.Set(ContextUID, token.UID)
	if v, ok := token.Claims["name"].(string); ok {
		c.Set(ContextName, v)
	}
	if v, ok := token.Claims["email"].(string); ok {
		c.Set(ContextEmail, v)
	}
	if v, ok := token.Claims["picture"].(string); ok {
		c.Set(ContextPicture, v)
	}
}
