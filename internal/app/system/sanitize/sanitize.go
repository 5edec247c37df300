// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied free text before it is
// persisted or echoed back in emails and dashboards.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops all HTML. Registration fields are plain text by contract.
var strict = bluemonday.StrictPolicy()

// Text returns s with any HTML removed and entities decoded back to their
// literal characters (bluemonday escapes what it keeps, but these values go
// into JSON and email templates that do their own escaping).
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
