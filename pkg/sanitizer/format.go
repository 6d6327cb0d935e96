package sanitizer

import (
	"regexp"
	"strings"
)

var dotRegex = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an address and consolidates
// consecutive dots in the local part, which some providers treat as
// equivalent. Invalid shapes are returned as-is; validation is the
// caller's concern.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := dotRegex.ReplaceAllString(parts[0], ".")
	local = strings.Trim(local, ".")

	return local + "@" + parts[1]
}

// CollapseWhitespace trims a free-text field and folds internal runs of
// whitespace into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
