package handlers

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// bookingHorizon bounds how far ahead a stay may be booked.
const bookingHorizon = 365 * 24 * time.Hour

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02.01.2006",
	"2.1.2006",
}

// parseDate tries the date formats users actually type in chat.
func parseDate(input string) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// today truncates now to the calendar date.
func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// validCheckIn accepts dates from today up to the booking horizon.
func validCheckIn(checkIn, now time.Time) bool {
	day := today(now)
	return !checkIn.Before(day) && !checkIn.After(day.Add(bookingHorizon))
}

// validCheckOut requires checkout strictly after checkin and within the
// same horizon.
func validCheckOut(checkIn, checkOut, now time.Time) bool {
	if !checkOut.After(checkIn) {
		return false
	}
	return !checkOut.After(today(now).Add(bookingHorizon))
}

// validName accepts alphabetic input only.
func validName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// validPhone accepts an optional plus followed by 7–15 digits.
func validPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// validEmail delegates to the validator library's email rule.
func (h *Handlers) validEmail(s string) bool {
	return h.validate.Var(strings.TrimSpace(s), "required,email") == nil
}
