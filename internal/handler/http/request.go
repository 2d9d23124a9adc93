package http

import (
	"net/http"
	"strconv"
	"strings"
)

// queryString returns nil when the parameter is absent or blank.
func queryString(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

// queryInt returns 0 when the parameter is absent. Malformed numbers return -1 so that
// filter validation rejects them instead of silently using the default.
func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
