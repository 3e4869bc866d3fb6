package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/platform/apierr"
)

// pathID parses the :id route parameter, answering 400 when it is not a
// positive integer.
func pathID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		response.RespondFault(c, apierr.BadRequest("invalid_id", fmt.Errorf("invalid id %q", raw)))
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, key string) (*int, bool) {
	raw, ok := c.GetQuery(key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.RespondFault(c, apierr.BadRequest("invalid_query", fmt.Errorf("%s must be an integer", key)))
		return nil, false
	}
	return &n, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondFault(c, apierr.BadRequest("invalid_body", err))
		return false
	}
	return true
}
