package api

import (
	"time"

	"github.com/banachtech/digicall/logging"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	requestIDHeaderKey = "X-Request-Id"
	requestIDKey       = "request_id"
)

// requestID reuses the caller's X-Request-Id or stamps a new ULID.
func (server *Server) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeaderKey)
	if id == "" {
		id = ulid.Make().String()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeaderKey, id)
	c.Next()
}

func (server *Server) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	logger := logging.WithRequestID(server.logger, c.GetString(requestIDKey))
	logger.Info().
		Str("http_method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Msg("request")
}
