package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts panics into a JSON 500 instead of a dropped
// connection. Projection code panics only on malformed compiled-in
// tables, so reaching this means a programming error worth surfacing.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": message,
			},
		})
		c.Abort()
	})
}
