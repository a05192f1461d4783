package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user generated HTML (blog content, comments) against XSS
// while keeping common formatting tags.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizeStrict strips all HTML; used for plain fields like titles and bios.
func SanitizeStrict(input string) string {
	return strictPolicy.Sanitize(input)
}
