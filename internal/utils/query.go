package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/constants"
)

// ParseID parses a positive numeric identifier from a path or query value
func ParseID(value string) (uint64, bool) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// GetRecipesLimit reads recipes_limit. Missing, non-numeric or negative
// values are ignored and reported as constants.NoLimit; 0 is a real limit.
func GetRecipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query(constants.QueryRecipesLimit))
	if err != nil || limit < 0 {
		return constants.NoLimit
	}
	return limit
}

// GetBoolFlag reports whether a query flag is set to 1 or true
func GetBoolFlag(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}
