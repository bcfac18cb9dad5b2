package telegram

import (
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/hotelbot/internal/config"
	"github.com/m3rciful/hotelbot/internal/telegram/netutil"
)

// Transport policy for Bot API calls. The client timeout stays above
// the long-poll window so getUpdates is never cut off mid-poll.
const (
	dialTimeout       = 5 * time.Second
	tlsHandshake      = 5 * time.Second
	idleConnTimeout   = 30 * time.Second
	responseTimeout   = 35 * time.Second
	clientTimeout     = 40 * time.Second
	keepAliveInterval = 30 * time.Second

	defaultRetryAttempts = 3
	defaultRetryBackoff  = 2 * time.Second
)

// BuildHTTPClient returns the HTTP client the bot talks to the Bot API
// with. Transient network failures are retried with a linear backoff;
// the attempt count and backoff come from the telegram config section.
func BuildHTTPClient(tg config.TelegramConfig) *http.Client {
	attempts := tg.APIRetryAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	backoff := time.Duration(tg.APIRetryBackoffMS) * time.Millisecond
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &http.Client{
		Timeout: clientTimeout,
		Transport: &retryTransport{
			next: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: dialTimeout, KeepAlive: keepAliveInterval}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       idleConnTimeout,
				TLSHandshakeTimeout:   tlsHandshake,
				ResponseHeaderTimeout: responseTimeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
			attempts: attempts,
			backoff:  backoff,
		},
	}
}

// retryTransport re-issues requests that failed with a retryable
// network error. Requests whose body cannot be replayed are never
// retried.
type retryTransport struct {
	next     http.RoundTripper
	attempts int
	backoff  time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}

	var lastErr error
	for attempt := 0; attempt <= t.attempts; attempt++ {
		if attempt > 0 {
			replay, err := rewind(req)
			if err != nil || replay == nil {
				return nil, lastErr
			}
			if err := t.wait(req, attempt); err != nil {
				return nil, err
			}
			req = replay
		}

		resp, err := next.RoundTrip(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !netutil.ShouldRetry(err) {
			break
		}
	}
	return nil, lastErr
}

// rewind clones the request with a fresh body, or returns nil when the
// body is not replayable.
func rewind(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

func (t *retryTransport) wait(req *http.Request, attempt int) error {
	delay := t.backoff * time.Duration(attempt)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
		return nil
	}
}
