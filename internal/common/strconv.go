package common

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// AtoiDefault converts the provided string to an integer falling back to the default when parsing fails.
func AtoiDefault(value string, def int) int {
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

// IDParam reads a positive int64 route parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &AppError{
			Code:       "BAD_REQUEST",
			Message:    name + " must be a positive integer",
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
			Details:    map[string]any{"field": name},
		}
	}
	return id, nil
}

// IntList parses a comma separated list of integers, ignoring blanks and junk.
func IntList(value string) []int {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// JoinInts renders values as a comma separated list.
func JoinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

// IDList parses a comma separated list of positive ids.
func IDList(value string) []int64 {
	ints := IntList(value)
	out := make([]int64, 0, len(ints))
	for _, n := range ints {
		if n > 0 {
			out = append(out, int64(n))
		}
	}
	return out
}
