package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bureporting/src/infra/logger"
)

// maxLoggedBody caps how much of a request or response body is logged.
const maxLoggedBody = 2048

// Logging emits one access log line per request with the request and
// response bodies. Bodies on auth routes carry login codes and are not logged.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		redact := strings.Contains(path, "/auth/")

		var reqBodyBytes []byte
		if c.Request.Body != nil && !redact {
			body := c.Request.Body
			reqBodyBytes, _ = io.ReadAll(io.LimitReader(body, maxLoggedBody+1))
			c.Request.Body = replayBody{
				Reader: io.MultiReader(bytes.NewReader(reqBodyBytes), body),
				Closer: body,
			}
		}

		rec := &responseCapture{ResponseWriter: c.Writer, skip: redact}
		c.Writer = rec

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if redact {
			attrs = append(attrs, "request", "[redacted]", "response", "[redacted]")
		} else {
			attrs = append(attrs,
				"request", truncate(string(reqBodyBytes)),
				"response", truncate(rec.body.String()),
			)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		reqLog := logger.WithRequestID(log, GetRequestID(c))
		if uid, err := strconv.ParseInt(c.GetHeader(UserIDHeader), 10, 64); err == nil {
			reqLog = logger.WithUser(reqLog, uid)
		}
		switch {
		case status >= 500:
			reqLog.Error("request completed", attrs...)
		case status >= 400:
			reqLog.Warn("request completed", attrs...)
		default:
			reqLog.Info("request completed", attrs...)
		}
	}
}

// replayBody hands the logged prefix back to the handler ahead of the unread rest.
type replayBody struct {
	io.Reader
	io.Closer
}

// responseCapture captures response body while delegating to original writer.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
	skip bool
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if !r.skip {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	if !r.skip {
		r.body.WriteString(s)
	}
	return r.ResponseWriter.WriteString(s)
}

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "...(truncated)"
}
