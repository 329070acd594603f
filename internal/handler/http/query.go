package http

import (
	"net/http"
	"strconv"
	"time"
)

// optionalQuery returns a pointer to the query value, or nil when absent.
func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// intQuery parses an integer query value. Malformed values yield fallback.
func intQuery(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// pagination reads page and limit, defaulting to page 1 of 20.
func pagination(r *http.Request) (page, limit int) {
	page = 1
	if p := intQuery(r, "page", 0); p > 0 {
		page = p
	}
	limit = 20
	if l := intQuery(r, "limit", 0); l > 0 {
		limit = l
	}
	return page, limit
}

// monthQuery reads year and month, defaulting to the current month in loc.
func monthQuery(r *http.Request, loc *time.Location) (year, month int) {
	now := time.Now().In(loc)
	return intQuery(r, "year", now.Year()), intQuery(r, "month", int(now.Month()))
}
