package handlers

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2026, 9, 5, 0, 0, 0, 0, time.Local)
	for _, input := range []string{"2026-09-05", "2026-9-5", "05.09.2026", "5.9.2026"} {
		got, ok := parseDate(input)
		if !ok {
			t.Fatalf("parseDate(%q) rejected", input)
		}
		if !got.Equal(want) {
			t.Fatalf("parseDate(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "2026/09/05", "31.02.x"} {
		if _, ok := parseDate(input); ok {
			t.Fatalf("parseDate(%q) accepted", input)
		}
	}
}

func TestValidCheckIn(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.Local)
	day := today(now)

	if !validCheckIn(day, now) {
		t.Fatal("today must be a valid check-in")
	}
	if !validCheckIn(day.AddDate(0, 0, 30), now) {
		t.Fatal("near-future date rejected")
	}
	if validCheckIn(day.AddDate(0, 0, -1), now) {
		t.Fatal("yesterday accepted")
	}
	if validCheckIn(day.AddDate(0, 0, 366), now) {
		t.Fatal("date past the horizon accepted")
	}
}

func TestValidCheckOut(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.Local)
	checkIn := today(now).AddDate(0, 0, 3)

	if !validCheckOut(checkIn, checkIn.AddDate(0, 0, 2), now) {
		t.Fatal("valid stay rejected")
	}
	if validCheckOut(checkIn, checkIn, now) {
		t.Fatal("same-day checkout accepted")
	}
	if validCheckOut(checkIn, checkIn.AddDate(0, 0, -1), now) {
		t.Fatal("checkout before checkin accepted")
	}
	if validCheckOut(checkIn, today(now).AddDate(0, 0, 366), now) {
		t.Fatal("checkout past the horizon accepted")
	}
}

func TestValidName(t *testing.T) {
	for _, s := range []string{"Anna", "Мария", "José"} {
		if !validName(s) {
			t.Fatalf("validName(%q) = false", s)
		}
	}
	for _, s := range []string{"", "  ", "Anna1", "A-B", "John Smith"} {
		if validName(s) {
			t.Fatalf("validName(%q) = true", s)
		}
	}
}

func TestValidPhone(t *testing.T) {
	for _, s := range []string{"+79991234567", "１", "8005553535", " +123456789 "} {
		ok := validPhone(s)
		if s == "１" {
			if ok {
				t.Fatalf("validPhone(%q) accepted a non-ASCII digit", s)
			}
			continue
		}
		if !ok {
			t.Fatalf("validPhone(%q) = false", s)
		}
	}
	for _, s := range []string{"", "123", "+1 234 567", "phone", "12345678901234567"} {
		if validPhone(s) {
			t.Fatalf("validPhone(%q) = true", s)
		}
	}
}

func TestValidEmail(t *testing.T) {
	h := &Handlers{validate: validator.New()}
	if !h.validEmail("user@example.com") {
		t.Fatal("plain address rejected")
	}
	for _, s := range []string{"", "user", "user@", "@example.com"} {
		if h.validEmail(s) {
			t.Fatalf("validEmail(%q) = true", s)
		}
	}
}
