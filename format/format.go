// Package format provides the shared format predicates for dataset
// fields: calendar dates, full UTC datetimes, schema version strings and
// embedded image data URLs.
//
// Date and datetime predicates check the pattern first and then parse
// the value, so strings that merely look like dates ("2024-02-30") are
// rejected.
package format

import (
	"regexp"
	"time"
)

// Layouts for parsing and formatting dataset timestamps.
const (
	// DateLayout is the calendar date form, YYYY-MM-DD.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the canonical export form: full UTC datetime with
	// milliseconds and a trailing Z.
	DateTimeLayout = "2006-01-02T15:04:05.000Z"
)

// Compiled patterns for validation.
var (
	dateRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,3})?Z$`)
	semVerRegex   = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	imageRegex    = regexp.MustCompile(`^data:image/[A-Za-z0-9.+-]+;base64,[A-Za-z0-9+/]+=*$`)
)

// IsDate reports whether s is exactly YYYY-MM-DD and denotes a real
// calendar date. Month 13 or Feb-30 fail even though they match the
// digit pattern.
func IsDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsDateTime reports whether s is a full UTC datetime of the form
// YYYY-MM-DDTHH:mm:ss[.sss]Z (milliseconds optional, trailing Z
// mandatory) and denotes a real instant. Offset timezones are rejected:
// the wire format is UTC only.
func IsDateTime(s string) bool {
	if !dateTimeRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// IsSemVer reports whether s is exactly three dot-separated non-negative
// integers (MAJOR.MINOR.PATCH). Pre-release and build suffixes are not
// supported.
func IsSemVer(s string) bool {
	return semVerRegex.MatchString(s)
}

// IsImageDataURL reports whether s is an embedded image of the form
// data:image/<subtype>;base64,<payload> where the payload is a non-empty
// run of base64 alphabet characters with optional '=' padding.
func IsImageDataURL(s string) bool {
	return imageRegex.MatchString(s)
}

// FormatDateTime renders t in the canonical export form: UTC with
// milliseconds and a trailing Z. The output always satisfies IsDateTime.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// FormatDate renders t as a calendar date. The output always satisfies
// IsDate.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
