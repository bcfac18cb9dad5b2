package telegram

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/m3rciful/hotelbot/internal/config"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "dial timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

// fakeRoundTripper fails the first failures calls, then succeeds.
type fakeRoundTripper struct {
	calls    int
	failures int
	err      error
}

func (f *fakeRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
}

func TestRetryTransportRetriesTimeouts(t *testing.T) {
	rt := &fakeRoundTripper{failures: 2, err: timeoutErr{}}
	tr := &retryTransport{next: rt, attempts: 3}

	req, err := http.NewRequest(http.MethodGet, "https://api.telegram.org/bot/getMe", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	resp.Body.Close()
	if rt.calls != 3 {
		t.Fatalf("calls = %d, want 3", rt.calls)
	}
}

func TestRetryTransportStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("connection refused by policy")
	rt := &fakeRoundTripper{failures: 10, err: permanent}
	tr := &retryTransport{next: rt, attempts: 3}

	req, err := http.NewRequest(http.MethodGet, "https://api.telegram.org/bot/getMe", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if _, err = tr.RoundTrip(req); !errors.Is(err, permanent) {
		t.Fatalf("err = %v, want the permanent error", err)
	}
	if rt.calls != 1 {
		t.Fatalf("calls = %d, want 1", rt.calls)
	}
}

func TestRetryTransportNeverReplaysStreamingBody(t *testing.T) {
	rt := &fakeRoundTripper{failures: 10, err: timeoutErr{}}
	tr := &retryTransport{next: rt, attempts: 3}

	// A bare io.Reader body has no GetBody, so the request cannot be
	// re-issued safely.
	body := io.Reader(struct{ io.Reader }{strings.NewReader("payload")})
	req, err := http.NewRequest(http.MethodPost, "https://api.telegram.org/bot/sendMessage", body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if _, err = tr.RoundTrip(req); err == nil {
		t.Fatal("want the transport error back")
	}
	if rt.calls != 1 {
		t.Fatalf("calls = %d, want 1", rt.calls)
	}
}

func TestBuildHTTPClientDefaults(t *testing.T) {
	client := BuildHTTPClient(config.TelegramConfig{})
	tr, ok := client.Transport.(*retryTransport)
	if !ok {
		t.Fatalf("transport = %T, want *retryTransport", client.Transport)
	}
	if tr.attempts != defaultRetryAttempts || tr.backoff != defaultRetryBackoff {
		t.Fatalf("policy = %d attempts, %v backoff", tr.attempts, tr.backoff)
	}

	client = BuildHTTPClient(config.TelegramConfig{APIRetryAttempts: 1, APIRetryBackoffMS: 50})
	tr = client.Transport.(*retryTransport)
	if tr.attempts != 1 || tr.backoff.Milliseconds() != 50 {
		t.Fatalf("policy = %d attempts, %v backoff", tr.attempts, tr.backoff)
	}
}
