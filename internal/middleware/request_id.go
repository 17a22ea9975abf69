package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// ContextKeyRequestID holds the request id in the gin context
const ContextKeyRequestID = "request_id"

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// requestIDMaxLen bounds client supplied ids before they reach the logs
const requestIDMaxLen = 64

// RequestID reads X-Request-ID or generates one, echoes it in the response
// and attaches a logger carrying it to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, rid)
		c.Header(HeaderRequestID, rid)

		l := logger.Get().With().Str("request_id", rid).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		c.Next()
	}
}
