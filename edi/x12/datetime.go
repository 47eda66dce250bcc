package x12

import (
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp converts a compact EDI date (CCYYMMDD or YYMMDD) plus an
// optional HHMM time into a UTC timestamp. A date carrying a range separator
// keeps only the first bound; the second bound is discarded. Any other
// length, a non-calendar date, or an impossible time yields nil — the owning
// record proceeds with the field unset.
func ParseTimestamp(dateStr, timeStr string) *time.Time {
	if i := strings.IndexByte(dateStr, '-'); i >= 0 {
		dateStr = dateStr[:i]
	}

	var (
		t   time.Time
		err error
	)
	switch len(dateStr) {
	case 8:
		t, err = time.Parse("20060102", dateStr)
	case 6:
		t, err = time.Parse("060102", dateStr)
	default:
		return nil
	}
	if err != nil {
		return nil
	}

	if len(timeStr) >= 4 {
		hour, herr := strconv.Atoi(timeStr[:2])
		minute, merr := strconv.Atoi(timeStr[2:4])
		if herr != nil || merr != nil ||
			hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return nil
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, time.UTC)
	}

	return &t
}

// ParseDate is ParseTimestamp with no time component (midnight).
func ParseDate(dateStr string) *time.Time {
	return ParseTimestamp(dateStr, "")
}
