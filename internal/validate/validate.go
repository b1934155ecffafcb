// Package validate holds the input checks applied before anything is sent
// to the admin backend.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// Email reports whether s looks like a deliverable address.
func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Phone accepts 10 to 15 digits with an optional leading plus; spaces and
// dashes are ignored.
func Phone(s string) bool {
	s = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	return phonePattern.MatchString(s)
}

// IFSC reports whether s is a well-formed Indian bank branch code.
func IFSC(s string) bool {
	return ifscPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// Required reports whether s is non-empty after trimming.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}
