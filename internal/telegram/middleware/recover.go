package middleware

import (
	"runtime/debug"

	"github.com/m3rciful/hotelbot/internal/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// RecoverMiddleware turns a handler panic into a logged error and a
// generic reply. No failure in a dialog handler is fatal to the
// process.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
				err = c.Send("Something went wrong, please try again later.")
			}
		}()
		return next(c)
	}
}
