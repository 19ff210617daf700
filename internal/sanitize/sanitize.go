// Package sanitize strips markup from user-supplied text fields.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element and attribute. A bluemonday policy is safe
// for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// maxPasses bounds how many layers of entity escaping are peeled off.
const maxPasses = 4

// PlainText removes all HTML from s and trims surrounding whitespace.
//
// The policy output is decoded so "Tom & Jerry" survives unchanged, and the
// decoded text is cleaned again until it is stable. Entity-escaped markup such
// as "&lt;b&gt;" therefore cannot come back as a live tag. Input that is still
// changing after maxPasses is returned in its escaped form.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	for range maxPasses {
		cleaned := strict.Sanitize(s)
		decoded := html.UnescapeString(cleaned)
		if decoded == s {
			return strings.TrimSpace(decoded)
		}
		s = decoded
	}
	return strings.TrimSpace(strict.Sanitize(s))
}

// OptionalPlainText applies PlainText to a pointer value. A nil input or a
// result that is empty after cleaning yields nil.
func OptionalPlainText(s *string) *string {
	if s == nil {
		return nil
	}
	v := PlainText(*s)
	if v == "" {
		return nil
	}
	return &v
}
