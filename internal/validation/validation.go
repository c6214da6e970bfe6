// Package validation holds the format checkers for user-supplied strings.
// All checks are pure functions over the input.
package validation

import "regexp"

var (
	tagRegex   = regexp.MustCompile(`^[\w-]+$`)
	emailRegex = regexp.MustCompile(`^\S+@\S+$`)
	urlRegex   = regexp.MustCompile(`^(?:[A-Za-z]{3,9}:(?://)?(?:[-;:&=+$,\w]+@)?[A-Za-z0-9.-]+|(?:www\.|[-;:&=+$,\w]+@)[A-Za-z0-9.-]+)(?:(?:/[+~%/.\w-]*)?\??(?:[-+=&;%@.\w]*)#?(?:[.!/\\\w]*))?$`)
)

// IsValidTag reports whether text contains only letters, digits, hyphens,
// and underscores.
func IsValidTag(text string) bool {
	return tagRegex.MatchString(text)
}

// IsValidURL reports whether text looks like a URL: a scheme or a www./user@
// prefix, a host, and an optional path, query, and fragment. Deliberately
// permissive.
func IsValidURL(text string) bool {
	return urlRegex.MatchString(text)
}

// IsValidEmail reports whether text has an email shape.
func IsValidEmail(text string) bool {
	return emailRegex.MatchString(text)
}
