package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/thoreinstein/folio/internal/errors"
)

// ErrInvalidDate indicates a publishedAt value that could not be parsed.
var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are tried in order. Layouts without a zone are read in the
// caller's location.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseDate parses a publishedAt value in the local time zone. A bare date
// such as 2024-01-02 is read as midnight.
func ParseDate(date string) (time.Time, error) {
	return parseDateIn(date, time.Local)
}

func parseDateIn(date string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(date)
	if !strings.Contains(s, "T") {
		s += "T00:00:00"
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q", date)
}

// FormatDate renders date as "January 2, 2006". With includeRelative it
// appends how long before now that was, e.g. "January 2, 2006 (3mo ago)".
//
// The relative part compares calendar fields, not durations: the first of
// year, month and day that is larger in now than in date decides the
// suffix, and "Today" is used when none is.
func FormatDate(date string, includeRelative bool, now time.Time) (string, error) {
	t, err := parseDateIn(date, now.Location())
	if err != nil {
		return "", err
	}

	full := t.Format("January 2, 2006")
	if !includeRelative {
		return full, nil
	}
	return fmt.Sprintf("%s (%s)", full, relative(t, now)), nil
}

func relative(t, now time.Time) string {
	years := now.Year() - t.Year()
	months := int(now.Month()) - int(t.Month())
	days := now.Day() - t.Day()

	switch {
	case years > 0:
		return fmt.Sprintf("%dy ago", years)
	case months > 0:
		return fmt.Sprintf("%dmo ago", months)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	default:
		return "Today"
	}
}
