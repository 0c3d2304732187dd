package normalize

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrBadDate is returned when a token cannot be read as a calendar date.
var ErrBadDate = errors.New("unparsable date")

var (
	dateTokenRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?$`)
	yearHintRe  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// Date converts a date token into a calendar date (midnight UTC, no time
// component). Accepted shapes are MM/DD/YYYY, MM/DD/YY, and bare MM/DD.
// Two-digit years pivot at 50: 51-99 land in the 1900s, 00-50 in the 2000s.
// Bare MM/DD tokens use assumedYear, which is statement-global rather than
// line-local. Impossible days of month (02/30) fail.
func Date(token string, assumedYear int) (time.Time, error) {
	m := dateTokenRe.FindStringSubmatch(token)
	if m == nil {
		return time.Time{}, ErrBadDate
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	year := assumedYear
	switch len(m[3]) {
	case 4:
		year, _ = strconv.Atoi(m[3])
	case 2:
		yy, _ := strconv.Atoi(m[3])
		if yy > 50 {
			year = 1900 + yy
		} else {
			year = 2000 + yy
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrBadDate
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (02/30 becomes 03/01); reject that.
	if date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, ErrBadDate
	}
	return date, nil
}

// AssumedYear scans whole-document text for the first 4-digit year and
// returns it, defaulting to the current calendar year when none is present.
// The result anchors every bare MM/DD date in the statement.
func AssumedYear(text string) int {
	if m := yearHintRe.FindString(text); m != "" {
		year, _ := strconv.Atoi(m)
		return year
	}
	return time.Now().Year()
}
