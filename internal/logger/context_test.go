package logger

import (
	"errors"
	"testing"
	"time"
)

func TestRIDRoundTrip(t *testing.T) {
	ctx := WithRID(Background(), "42:7:9")
	if got := RIDFrom(ctx); got != "42:7:9" {
		t.Fatalf("rid = %q", got)
	}
	if got := RIDFrom(Background()); got != "" {
		t.Fatalf("rid on empty ctx = %q", got)
	}
}

func TestUpdateMetaRoundTrip(t *testing.T) {
	ctx := WithUpdateMeta(Background(), 42, 7, 9)
	if got := UpdateIDFrom(ctx); got != 42 {
		t.Fatalf("update id = %d", got)
	}
	if got := UserIDFrom(ctx); got != 7 {
		t.Fatalf("user id = %d", got)
	}
	if got := ChatIDFrom(ctx); got != 9 {
		t.Fatalf("chat id = %d", got)
	}
}

func TestHandlerRoundTrip(t *testing.T) {
	ctx := WithHandler(Background(), "show_rooms")
	if got := HandlerFrom(ctx); got != "show_rooms" {
		t.Fatalf("handler = %q", got)
	}
	if got := HandlerFrom(WithHandler(Background(), "")); got != "" {
		t.Fatalf("handler on empty name = %q", got)
	}
}

func TestBuildRID(t *testing.T) {
	if got := BuildRID(42, 9, 7); got != "42:9:7" {
		t.Fatalf("rid = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("line\nbreak\ttab"); got != "line break tab" {
		t.Fatalf("sanitized = %q", got)
	}
	if got := Sanitize(""); got != "" {
		t.Fatalf("empty = %q", got)
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("limited = %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "abc" {
		t.Fatalf("unlimited = %q", got)
	}
}

func TestStatus(t *testing.T) {
	if Status(nil) != "ok" {
		t.Fatal("nil error must be ok")
	}
	if Status(errors.New("boom")) != "fail" {
		t.Fatal("error must be fail")
	}
}

func TestRoundMS(t *testing.T) {
	if got := RoundMS(-time.Second); got != 0 {
		t.Fatalf("negative = %v", got)
	}
	if got := RoundMS(1499 * time.Microsecond); got != time.Millisecond {
		t.Fatalf("rounded = %v", got)
	}
}

func TestSummarizeStrings(t *testing.T) {
	preview, truncated := SummarizeStrings([]string{"a", "b", "c"}, 2)
	if preview != "a, b" || !truncated {
		t.Fatalf("preview = %q truncated = %v", preview, truncated)
	}
	preview, truncated = SummarizeStrings([]string{"a"}, 2)
	if preview != "a" || truncated {
		t.Fatalf("preview = %q truncated = %v", preview, truncated)
	}
}
