package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"LF-ADMIN/internal/storage"

	"github.com/gin-gonic/gin"
)

// ServeSignedFile streams a locally stored file. Every request needs a valid
// signature from LocalStorageClient.GetSignedURL.
// GET /files/*filepath?expires=&signature=
func ServeSignedFile(client *storage.LocalStorageClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		objectName := strings.TrimPrefix(c.Param("filepath"), "/")
		if objectName == "" {
			badRequest(c, "file path required")
			return
		}

		fullPath, err := client.ResolvePath(objectName)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid file path"})
			return
		}

		expiresStr := c.Query("expires")
		signature := c.Query("signature")
		if signature == "" || expiresStr == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "signed URL required"})
			return
		}
		expiresAt, err := strconv.ParseInt(expiresStr, 10, 64)
		if err != nil {
			badRequest(c, "invalid expires parameter")
			return
		}
		if !client.VerifySignedURL(objectName, expiresAt, signature) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired signature"})
			return
		}

		c.File(fullPath)
	}
}
