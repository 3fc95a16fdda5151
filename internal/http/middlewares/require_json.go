package middlewares

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects write requests whose Content-Type is not JSON
// (application/json or application/*+json, parameters allowed) with the same
// 400 a malformed body gets.
func RequireJSON(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if !isJSONContentType(c.GetHeader("Content-Type")) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"erro":      message,
					"requestId": c.GetString(RequestIDKey),
				})
				return
			}
		}
		c.Next()
	}
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}

	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}

	if mt == "application/json" {
		return true
	}

	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}
