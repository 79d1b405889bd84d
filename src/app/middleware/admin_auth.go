package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bureporting/src/app/http/response"
)

// UserIDHeader carries the caller's user ID.
const UserIDHeader = "X-User-ID"

// UserIDKey is the context key for the authenticated user ID.
const UserIDKey = "user_id"

// AdminChecker reports whether a user holds administrator privileges.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AdminAuth enforces that the incoming request is made by an administrator.
// It reads the X-User-ID header and asks the database whether the user is an
// admin. On success it stores the user ID in the context under UserIDKey.
func AdminAuth(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			response.Unauthorized(c, "missing X-User-ID header", requestID)
			c.Abort()
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			response.BadRequest(c, "X-User-ID header is missing or invalid.", requestID)
			c.Abort()
			return
		}

		ok, err := admins.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			c.Error(err)
			response.FromDomainError(c, err, requestID)
			c.Abort()
			return
		}
		if !ok {
			response.Forbidden(c, "user must be an administrator", requestID)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the user ID stored by AdminAuth.
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
