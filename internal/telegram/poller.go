package telegram

import (
	"fmt"
	"time"

	"github.com/m3rciful/hotelbot/internal/config"

	tele "gopkg.in/telebot.v4"
)

// defaultLongPollTimeout is used when the config leaves the long-poll
// window unset.
const defaultLongPollTimeout = 10 * time.Second

// BuildPoller maps the normalized run mode onto a telebot poller.
// config.Normalize has already validated the mode and the webhook
// fields, so no re-validation happens here.
func BuildPoller(tg config.TelegramConfig, wh config.WebhookConfig) tele.Poller {
	if tg.RunMode == config.RunModeWebhook {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", wh.Listen, wh.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: wh.URL},
		}
	}

	timeout := defaultLongPollTimeout
	if tg.LongPollTimeoutSeconds > 0 {
		timeout = time.Duration(tg.LongPollTimeoutSeconds) * time.Second
	}
	return &tele.LongPoller{Timeout: timeout}
}
