package api

import (
	"strconv"
	"strings"
)

// splitEventPath parses "/events/{id}/{rest}" and returns the id and the
// remaining single segment.
func splitEventPath(path string) (int64, string, error) {
	trimmed := strings.TrimPrefix(path, "/events/")
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, "", ErrBadRequest
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", ErrBadRequest
	}
	return id, parts[1], nil
}

// splitActivityPath parses "/activities/{id}/records" and returns the id.
func splitActivityPath(path string) (int64, error) {
	trimmed := strings.TrimPrefix(path, "/activities/")
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) != 2 || parts[1] != "records" {
		return 0, ErrBadRequest
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, ErrBadRequest
	}
	return id, nil
}
