package telegram

import (
	"testing"
	"time"

	"github.com/m3rciful/hotelbot/internal/config"

	tele "gopkg.in/telebot.v4"
)

func TestBuildPollerLongpoll(t *testing.T) {
	p := BuildPoller(config.TelegramConfig{RunMode: config.RunModeLongpoll}, config.WebhookConfig{})
	lp, ok := p.(*tele.LongPoller)
	if !ok {
		t.Fatalf("poller = %T, want *tele.LongPoller", p)
	}
	if lp.Timeout != defaultLongPollTimeout {
		t.Fatalf("default timeout = %v", lp.Timeout)
	}

	p = BuildPoller(config.TelegramConfig{RunMode: config.RunModeLongpoll, LongPollTimeoutSeconds: 25}, config.WebhookConfig{})
	if lp = p.(*tele.LongPoller); lp.Timeout != 25*time.Second {
		t.Fatalf("configured timeout = %v", lp.Timeout)
	}
}

func TestBuildPollerWebhook(t *testing.T) {
	p := BuildPoller(
		config.TelegramConfig{RunMode: config.RunModeWebhook},
		config.WebhookConfig{Listen: "0.0.0.0", Port: 8443, URL: "https://bot.example.com/hook"},
	)
	wh, ok := p.(*tele.Webhook)
	if !ok {
		t.Fatalf("poller = %T, want *tele.Webhook", p)
	}
	if wh.Listen != "0.0.0.0:8443" {
		t.Fatalf("listen = %q", wh.Listen)
	}
	if wh.Endpoint.PublicURL != "https://bot.example.com/hook" {
		t.Fatalf("public url = %q", wh.Endpoint.PublicURL)
	}
}
