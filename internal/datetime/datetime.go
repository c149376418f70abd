// Package datetime converts the loosely formatted date/time text typed into
// the trip wizard into the canonical local ISO-8601 form the backend expects
// (YYYY-MM-DDTHH:MM:SS, no zone).
package datetime

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout is the canonical local date-time layout.
const Layout = "2006-01-02T15:04:05"

// Expected is the human readable pattern reported on rejection.
const Expected = "YYYY-MM-DD HH:MM"

// ErrFormat is the category of every canonicalization failure.
var ErrFormat = errors.New("invalid datetime format")

// FormatError names the rejected input.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid datetime format: %s. Expected: %s", e.Value, Expected)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

type rule struct {
	re        *regexp.Regexp
	transform func(s string, m []string) string
}

// Order matters: the first matching rule wins.
var rules = []rule{
	{
		re:        regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`),
		transform: func(s string, _ []string) string { return s },
	},
	{
		re:        regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2})$`),
		transform: func(_ string, m []string) string { return m[1] + "T" + m[2] + ":00" },
	},
	{
		re:        regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`),
		transform: func(s string, _ []string) string { return s + ":00" },
	},
	{
		re:        regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		transform: func(s string, _ []string) string { return s + "T00:00:00" },
	},
	{
		re: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`),
		transform: func(_ string, m []string) string {
			return fmt.Sprintf("%s-%s-%sT00:00:00", m[1], pad2(m[2]), pad2(m[3]))
		},
	},
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ToISO canonicalizes s. Leading and trailing whitespace is ignored.
// Inputs outside the accepted grammar yield a *FormatError; nothing is guessed.
// Calendar validity (e.g. month 13) is left to the backend.
func ToISO(s string) (string, error) {
	trimmed := strings.TrimSpace(s)

	for _, r := range rules {
		if m := r.re.FindStringSubmatch(trimmed); m != nil {
			return r.transform(trimmed, m), nil
		}
	}

	return "", &FormatError{Value: trimmed}
}

// Format joins a picked date and a picked clock time as YYYY-MM-DDTHH:MM:00.
// Only the calendar part of date and the hour/minute of clock are used.
func Format(date, clock time.Time) string {
	return date.Format("2006-01-02") + "T" + clock.Format("15:04") + ":00"
}

// Parse reads a backend timestamp, either canonical local form (interpreted
// in loc) or RFC 3339 with an explicit offset.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(Layout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &FormatError{Value: s}
	}
	return t, nil
}
