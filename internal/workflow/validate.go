package workflow

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	handleRegex = regexp.MustCompile(`^@?[A-Za-z0-9_]{5,32}$`)
	amountRegex = regexp.MustCompile(`^\d+$`)
)

const selfInput = "self"

// IsValidHandle reports whether s is a 5-32 char handle, optionally prefixed with @
func IsValidHandle(s string) bool {
	return handleRegex.MatchString(s)
}

// NormalizeHandle prefixes @ when it is missing
func NormalizeHandle(s string) string {
	if strings.HasPrefix(s, "@") {
		return s
	}
	return "@" + s
}

// ResolveHandle turns the USERNAME answer into a normalized sender handle.
// "self" stands for the reporter's own username.
func ResolveHandle(input string, from Identity) (string, error) {
	handle := strings.TrimSpace(input)
	if strings.EqualFold(handle, selfInput) {
		if from.Username == "" {
			return "", &ValidationError{Kind: MissingHandle}
		}
		handle = from.Username
	}
	if !IsValidHandle(handle) {
		return "", &ValidationError{Kind: InvalidFormat}
	}
	return NormalizeHandle(handle), nil
}

// ParseAmount accepts one or more ASCII digits
func ParseAmount(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if !amountRegex.MatchString(s) {
		return 0, &ValidationError{Kind: NotNumeric}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// out of int64 range
		return 0, &ValidationError{Kind: NotNumeric}
	}
	return n, nil
}
