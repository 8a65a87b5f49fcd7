package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxLogger       = "logger"
)

// RequestID propagates the caller's X-Request-ID or generates one, and
// stores a request-scoped logrus entry on the context.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(ctxRequestID, reqID)
		c.Header(RequestIDHeader, reqID)
		c.Set(ctxLogger, log.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}))
		c.Next()
	}
}

// Log returns the request-scoped logger, or the standard logger outside a
// request.
func Log(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(ctxLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
