package utils

import "regexp"

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// ValidateUsername checks the username is 3-30 chars of letters, numbers, underscores or hyphens
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}
