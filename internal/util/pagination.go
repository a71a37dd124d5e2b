package util

import "strconv"

const (
	DefaultPageSize = 10
	DefaultLimit    = 100
)

// Calculate turns a 1-based page plus size into an offset/limit pair,
// clamping size to (0, 100].
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return from, size
}

// ParseIntDefault parses s, falling back to def on empty or malformed input.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
