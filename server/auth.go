package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	secretHeader = "X-Webhook-Secret"
	bearerPrefix = "Bearer "
)

// providedSecrets collects every credential the request carries. Either one may match.
func providedSecrets(header http.Header) []string {
	var secrets []string
	if secret := header.Get(secretHeader); secret != "" {
		secrets = append(secrets, secret)
	}
	if auth := header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix)); token != "" {
			secrets = append(secrets, token)
		}
	}
	return secrets
}

// Authorized reports whether the request carries the shared secret in the secret header
// or as a bearer token. An empty secret disables the check.
func Authorized(secret string, header http.Header) bool {
	if secret == "" {
		return true
	}
	authorized := false
	for _, provided := range providedSecrets(header) {
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1 {
			authorized = true
		}
	}
	return authorized
}

func requireSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Authorized(secret, c.Request.Header) {
			requestLog(c).Warn("Rejected webhook call with missing or invalid secret")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
