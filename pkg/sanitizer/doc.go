// Package sanitizer normalizes user-supplied identity fields before
// they reach uniqueness checks or storage, so that "Ada@Example.com "
// and "ada@example.com" cannot become two accounts.
package sanitizer
