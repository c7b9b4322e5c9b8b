package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value. Values below 1 fall back
// to the default too.
func ParseInt(value string, defaultValue int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
