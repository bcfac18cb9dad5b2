package middleware

import tele "gopkg.in/telebot.v4"

// SessionLocker hands out per-user locks.
type SessionLocker interface {
	Acquire(userID int64) (release func())
}

// SerializeMiddleware holds the user's session lock for the whole
// update so two overlapping events for one user can never interleave
// their state mutations or pager renders. Independent users proceed
// concurrently.
func SerializeMiddleware(locker SessionLocker) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || locker == nil {
				return next(c)
			}
			release := locker.Acquire(user.ID)
			defer release()
			return next(c)
		}
	}
}
