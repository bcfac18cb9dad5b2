package middleware

import (
	"github.com/m3rciful/hotelbot/internal/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// AdminChecker resolves whether a user carries the admin flag. Backed
// by the users table, so promotions take effect without a restart.
type AdminChecker interface {
	IsAdmin(userID int64) bool
}

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	Checker  AdminChecker
	OnReject tele.HandlerFunc
}

// AdminOnlyMiddleware ensures that only admins can invoke downstream
// handlers. Rejection leaks nothing about valid admin actions.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Checker == nil || !opts.Checker.IsAdmin(user.ID) {
				var userID int64
				if user != nil {
					userID = user.ID
				}
				logger.TG.Warn("admin access denied",
					slog.String("event", "tg.access"),
					slog.Int64("user_id", userID),
				)
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
