package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID keeps the caller's X-Request-ID or assigns a new one, echoes it in
// the response and logs any handler errors under it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		for _, e := range c.Errors {
			log.Printf("request %s: %s %s: %v", id, c.Request.Method, c.FullPath(), e.Err)
		}
	}
}
