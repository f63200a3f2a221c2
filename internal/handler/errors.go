package handler

import (
	"strconv"
	"time"

	"swmanager/internal/apperror"
	"swmanager/internal/middleware"
	"swmanager/internal/service"
	"swmanager/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError renders err as {"message": ...} with the status its kind maps to
func writeError(c *gin.Context, err error) {
	status, body := response.FromError(err)
	c.JSON(status, body)
}

// bindJSON decodes and validates the request body, writing a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, apperror.InvalidInput("Invalid request payload: "+err.Error()))
		return false
	}
	return true
}

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, apperror.InvalidInput("Invalid "+name+": "+c.Param(name)))
		return 0, false
	}
	return id, true
}

// queryDate parses a required date query parameter
func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		writeError(c, apperror.InvalidInput("Missing query parameter: "+name))
		return time.Time{}, false
	}
	t, err := service.ParseDate(raw)
	if err != nil {
		writeError(c, err)
		return time.Time{}, false
	}
	return t, true
}

func actor(c *gin.Context) int64 {
	return middleware.ActorID(c)
}

func setTotal(c *gin.Context, total int64) {
	c.Header(response.TotalCountHeader, strconv.FormatInt(total, 10))
}
