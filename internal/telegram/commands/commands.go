// Package commands holds the per-command metadata the registry routes
// and publishes from.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command couples a slash command's handler with its routing metadata:
// admin gating, command-menu visibility and the aliases the text
// fallback resolves.
type Command struct {
	Handler     tele.HandlerFunc
	Description string

	// AdminOnly commands are refused unless the sender carries is_admin.
	AdminOnly bool
	// Hidden keeps the command out of the published menu while leaving
	// it routable.
	Hidden bool
	// Aliases are alternative names for the same handler. They are not
	// separate bot endpoints; the text fallback resolves them.
	Aliases []string
}

// MenuVisible reports whether the command belongs in the published
// command menu. Admin commands never do.
func (c Command) MenuVisible() bool {
	return !c.Hidden && !c.AdminOnly
}
