package v1

import (
	"strconv"

	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// queryID reads a positive integer id from the query string. On failure the
// error is pushed to the context and ok is false.
func queryID(c *gin.Context, key, missingMsg string) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		c.Error(apperror.BadRequest(missingMsg))
		return 0, false
	}
	return parseID(c, raw)
}

// pathID reads a positive integer id from a path parameter.
func pathID(c *gin.Context, key string) (int64, bool) {
	return parseID(c, c.Param(key))
}

func parseID(c *gin.Context, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid ID"))
		return 0, false
	}
	return id, true
}
