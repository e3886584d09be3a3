package httpserver

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses the named path parameter as a positive integer id. It
// answers 400 and returns false when the value is not usable.
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid id: "+raw)
		return 0, false
	}
	return id, true
}

// pageParam reads the zero-based page query parameter.
func pageParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("page", "0")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		badRequest(c, "Invalid page: "+raw)
		return 0, false
	}
	return page, true
}

// descParam reads the descending-sort flag. Anything but a boolean counts
// as false.
func descParam(c *gin.Context) bool {
	desc, err := strconv.ParseBool(c.DefaultQuery("desc", "false"))
	return err == nil && desc
}
