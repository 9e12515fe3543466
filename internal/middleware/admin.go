package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"clicker_wallet/internal/auth" // Credential verification

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AdminAuthMiddleware gates admin routes behind a bearer credential checked
// by the verifier. Every failure answers 403 with the same body, so callers
// cannot tell a missing header from a near-miss credential, and the status
// stays distinguishable from a 404.
func AdminAuthMiddleware(verifier auth.CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid admin credentials"})
			return
		}
		credential := strings.TrimPrefix(authHeader, "Bearer ") // Extract the credential
		if !verifier.Verify(credential) {
			logrus.WithField("path", c.FullPath()).Warn("Unauthorized admin access attempt")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid admin credentials"})
			return
		}
		c.Next() // Credential accepted, proceed to the handler
	}
}
