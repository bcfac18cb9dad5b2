package router

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// HandleText routes free text. Slash commands that reached the text
// fallback (aliases, typos with a known prefix) are resolved through
// the command registry; everything else goes into the dialog state
// machine. Registered as the tele.OnText endpoint.
func (r *Router) HandleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if strings.HasPrefix(text, "/") && r.cmd != nil {
		name := text
		if i := strings.IndexAny(name, " @"); i >= 0 {
			name = name[:i]
		}
		if _, cmd, ok := r.cmd.LookupCommand(name); ok {
			if cmd.AdminOnly && !r.h.IsAdmin(c.Sender().ID) {
				return c.Send("You are not allowed to do that.")
			}
			return cmd.Handler(c)
		}
		return c.Send("Unknown command. Try /start.")
	}
	return r.h.HandleText(c)
}
