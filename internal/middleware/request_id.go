package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
)

const (
	RequestIDHeader = "X-Request-ID"
	KeyRequestID    = "request_id"
)

// RequestID 透传或生成请求 ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = pkg.GenerateRequestID()
		}
		c.Set(KeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
