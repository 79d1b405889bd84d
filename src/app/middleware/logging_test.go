package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := newTestRouter(Logging(log))
	r.POST("/bu-rpt/v1/logs", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, "echo:"+string(body))
	})
	r.POST("/bu-rpt/v1/records", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, "%d", len(body))
	})
	r.POST("/bu-rpt/v1/auth/verify-code", func(c *gin.Context) {
		c.String(http.StatusUnauthorized, "code 482913 rejected")
	})

	t.Run("bodies_logged", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bu-rpt/v1/logs", strings.NewReader("hello")))

		assert.Equal(t, "echo:hello", w.Body.String())
		out := buf.String()
		assert.Contains(t, out, `"level":"INFO"`)
		assert.Contains(t, out, `"request":"hello"`)
		assert.Contains(t, out, `"response":"echo:hello"`)
		assert.Contains(t, out, `"request_id"`)
	})

	t.Run("large_body_passed_through_whole", func(t *testing.T) {
		buf.Reset()
		payload := strings.Repeat("a", maxLoggedBody) + strings.Repeat("b", 1<<20)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bu-rpt/v1/records", strings.NewReader(payload)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, strconv.Itoa(len(payload)), w.Body.String())
		out := buf.String()
		assert.Contains(t, out, "...(truncated)")
		assert.NotContains(t, out, "ab")
		assert.Less(t, len(out), 4*maxLoggedBody)
	})

	t.Run("auth_bodies_redacted", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bu-rpt/v1/auth/verify-code",
			strings.NewReader(`{"email":"dana@example.com","code":"482913"}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		out := buf.String()
		assert.Contains(t, out, `"level":"WARN"`)
		assert.NotContains(t, out, "482913")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))

	long := strings.Repeat("x", maxLoggedBody+10)
	got := truncate(long)
	assert.True(t, strings.HasSuffix(got, "...(truncated)"))
	assert.Len(t, got, maxLoggedBody+len("...(truncated)"))
}
