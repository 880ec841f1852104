package util

import (
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// 10-15 digits with an optional leading +.
	mobileRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func IsValidEmail(s string) bool {
	return s != "" && emailRegex.MatchString(s)
}

func IsValidMobile(s string) bool {
	return s != "" && mobileRegex.MatchString(s)
}
