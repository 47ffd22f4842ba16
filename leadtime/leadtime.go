// Package leadtime turns the staff-configured minimum order notice into a
// concrete earliest delivery time.
package leadtime

import (
	"strings"
	"time"
	"unicode"
)

// DefaultNoticeHours applies whenever the configured notice cannot be
// understood. Malformed configuration must never block checkout.
const DefaultNoticeHours = 24

// ParseNoticeHours extracts the notice window in hours from free text such
// as "24 hours" or "2 days". Unrecognizable input falls back to the default.
func ParseNoticeHours(notice string) int {
	text := strings.ToLower(notice)
	n := digits(text)

	switch {
	case strings.Contains(text, "hour"):
		if n == 0 {
			n = DefaultNoticeHours
		}
		return n
	case strings.Contains(text, "day"):
		if n == 0 {
			n = 1
		}
		return n * 24
	default:
		return DefaultNoticeHours
	}
}

// MinimumDeliveryDate is the earliest moment an order placed at now may be
// fulfilled.
func MinimumDeliveryDate(now time.Time, notice string) time.Time {
	return now.Add(time.Duration(ParseNoticeHours(notice)) * time.Hour)
}

// digits concatenates every digit in s into one number, so "2 days" is 2
// and "giving us 1 to 2 days" is 12. That quirk matches how the notice has
// always been read; staff enter simple values like "48 hours".
func digits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n = n*10 + int(r-'0')
		}
	}
	return n
}
