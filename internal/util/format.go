package util

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ISODate is the wire format for every date field.
const ISODate = "2006-01-02"

// FormatDate renders an ISO date (or timestamp) with layout. Values that do
// not parse are returned unchanged, and empty stays empty.
func FormatDate(value, layout string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return t.Format(layout)
}

// ParseDate accepts "2006-01-02" optionally followed by a time part.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if len(value) < len(ISODate) {
		return time.Time{}, false
	}
	t, err := time.Parse(ISODate, value[:len(ISODate)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns now as an ISO date.
func Today(now time.Time) string {
	return now.Format(ISODate)
}

// DueDate returns the ISO date days after now.
func DueDate(now time.Time, days int) string {
	return now.AddDate(0, 0, days).Format(ISODate)
}

// Initials takes the first letter of each whitespace-separated token, up to
// two.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, tok := range strings.Fields(name) {
		if n == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(tok)
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// Age is the calendar-year difference between birth and now. It does not
// adjust for whether the birthday has passed this year.
func Age(birth string, now time.Time) (int, bool) {
	t, ok := ParseDate(birth)
	if !ok {
		return 0, false
	}
	return now.Year() - t.Year(), true
}

// Stars renders rating as that many ★ glyphs.
func Stars(rating int) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat("★", rating)
}
