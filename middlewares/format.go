package middlewares

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes a stable machine-readable error code
// to the client. The code, not the log text, is the contract with the
// presentation layer.
func HttpError(c *gin.Context, code string, status int, err error) {
	if err != nil {
		log.Printf("HTTP %d - %s: %v", status, code, err)
	}
	c.JSON(status, gin.H{"error": code})
}

// LoggingMiddleware logs information about incoming requests.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Printf("Request: %s %s | Status: %d | Duration: %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
