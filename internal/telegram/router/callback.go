// Package router dispatches incoming updates: callbacks through the
// parsed action set, plain messages through commands and the dialog
// state machine.
package router

import (
	"context"
	"errors"
	"strings"

	"github.com/m3rciful/hotelbot/internal/logger"
	"github.com/m3rciful/hotelbot/internal/telegram/action"
	"github.com/m3rciful/hotelbot/internal/telegram/commands"
	"github.com/m3rciful/hotelbot/internal/telegram/handlers"
	"github.com/m3rciful/hotelbot/internal/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandLookup resolves slash commands and their aliases to handlers.
type CommandLookup interface {
	LookupCommand(name string) (string, commands.Command, bool)
}

// Router binds the conversation handlers to bot endpoints.
type Router struct {
	h   *handlers.Handlers
	cmd CommandLookup
}

// New creates a router over the handler set. cmd may be nil, in which
// case unknown slash commands fall through to the text fallback reply.
func New(h *handlers.Handlers, cmd CommandLookup) *Router {
	return &Router{h: h, cmd: cmd}
}

// adminKinds lists the actions gated behind the is_admin flag. The
// check happens here, before any handler or state transition runs.
var adminKinds = map[action.Kind]struct{}{
	action.Broadcast:        {},
	action.StartBroadcast:   {},
	action.DBList:           {},
	action.AdminAdd:         {},
	action.AdminEditText:    {},
	action.AdminEditMenu:    {},
	action.AdminDeleteMenu:  {},
	action.AdminDeleteByID:  {},
	action.AdminPickField:   {},
	action.EditGuestService: {},
}

// HandleCallback parses the callback data exactly once and dispatches
// on the action kind. Every callback is acknowledged so the client
// never shows a stuck spinner, including rejected ones.
func (r *Router) HandleCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	defer func() {
		if err := c.Respond(); err != nil {
			logger.TG.LogAttrs(context.Background(), slog.LevelWarn, "callback.ack_failed",
				slog.String("err", err.Error()),
			)
		}
	}()

	data := strings.TrimPrefix(cb.Data, "\f")
	act, err := action.Parse(data)
	if errors.Is(err, action.ErrUnknownAction) {
		// A button from a retired keyboard. The deferred ack clears the
		// spinner; nothing else to say.
		logger.TG.LogAttrs(context.Background(), slog.LevelDebug, "callback.unknown",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("data", logger.Sanitize(data)),
		)
		return nil
	}
	if err != nil {
		logger.TG.LogAttrs(context.Background(), slog.LevelWarn, "callback.rejected",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("data", logger.Sanitize(data)),
		)
		return c.Send("Invalid request.")
	}

	if _, gated := adminKinds[act.Kind]; gated && !r.h.IsAdmin(c.Sender().ID) {
		return c.Send("You are not allowed to do that.")
	}
	if act.Kind == action.Back && act.Target == "admin" && !r.h.IsAdmin(c.Sender().ID) {
		return c.Send("You are not allowed to do that.")
	}

	ctx := logger.WithHandler(middleware.BuildContext(c), act.Kind.String())
	middleware.StoreContext(c, ctx)

	switch act.Kind {
	case action.ShowRooms:
		return r.h.EnterBrowser(c)
	case action.ShowServices:
		return r.h.ShowServices(c)
	case action.PrevCategory:
		return r.h.BrowsePrev(c)
	case action.NextCategory:
		return r.h.BrowseNext(c)
	case action.Book:
		return r.h.StartBooking(c, act.ID)
	case action.SelectService:
		return r.h.StartServiceOrder(c, act.ID)
	case action.SkipField:
		return r.h.SkipBookingField(c, act.Field)
	case action.Broadcast:
		return r.h.StartBroadcast(c)
	case action.StartBroadcast:
		return r.h.ConfirmBroadcast(c)
	case action.Back:
		return r.handleBack(c, act.Target)
	case action.DBList:
		return r.h.ShowEntity(c, act.Entity)
	case action.AdminAdd:
		return r.h.StartAdminAdd(c, act.Entity)
	case action.AdminEditText:
		return r.h.StartAdminEditText(c, act.Entity)
	case action.AdminEditMenu:
		return r.h.StartAdminEditMenu(c, act.Entity)
	case action.AdminDeleteMenu:
		return r.h.StartAdminDelete(c, act.Entity)
	case action.AdminDeleteByID:
		return r.h.AdminDeleteByID(c, act.Entity, act.ID)
	case action.AdminPickField:
		return r.h.PickAdminField(c, act.Entity, act.Field)
	case action.EditGuestService:
		return r.h.StartOrderEdit(c, act.GuestID, act.ServiceID, act.OrderDate)
	}

	return c.Send("Invalid request.")
}

func (r *Router) handleBack(c tele.Context, target string) error {
	switch target {
	case "admin":
		return r.h.Back(c)
	case "menu":
		return r.h.Start(c)
	}
	return c.Send("Invalid request.")
}
