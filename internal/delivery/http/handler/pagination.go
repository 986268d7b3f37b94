package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// parsePagination reads page/per_page query params with sane bounds.
func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = defaultPerPage

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			perPage = n
			if perPage > maxPerPage {
				perPage = maxPerPage
			}
		}
	}

	return page, perPage
}

// parseID parses a positive integer path or query value.
func parseID(value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
