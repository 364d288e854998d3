package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AMN-D/RICE/internal/apperror"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pageParams reads skip/limit query parameters, clamping limit to 1..100.
func pageParams(c *gin.Context) (skip, limit int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperror.BadRequest("invalid " + name)
	}
	return uint(id), nil
}

// currentUser returns the authenticated user ID set by the auth middleware.
func currentUser(c *gin.Context) uint {
	return c.GetUint("user_id")
}
