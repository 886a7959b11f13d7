package utils

import (
	"net/http"
	"strconv"
)

// ParseLimit reads the limit query parameter, falling back to def and
// clamping to max. Callers never get an unbounded result set.
func ParseLimit(r *http.Request, def, max int64) int64 {
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
