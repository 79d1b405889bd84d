package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bureporting/src/app/http/response"
	"bureporting/src/app/middleware"
)

const missingUserID = "X-User-ID header is missing or invalid."

// headerUserID parses X-User-ID. It returns false for a missing, malformed
// or non-positive value.
func headerUserID(c *gin.Context) (int64, bool) {
	return parseID(c.GetHeader(middleware.UserIDHeader))
}

// requireUserID is headerUserID that answers 400 on failure.
func requireUserID(c *gin.Context) (int64, bool) {
	id, ok := headerUserID(c)
	if !ok {
		response.BadRequest(c, missingUserID, middleware.GetRequestID(c))
	}
	return id, ok
}

// pathID parses a positive integer path parameter and answers 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, ok := parseID(c.Param(name))
	if !ok {
		response.ValidationError(c, name, name+" must be a positive integer", middleware.GetRequestID(c))
	}
	return id, ok
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
