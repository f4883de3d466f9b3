// Package commands describes slash commands kept in the registry.
package commands

import tele "gopkg.in/telebot.v4"

// Command is a slash command handler with its menu metadata.
type Command struct {
	Handler tele.HandlerFunc
	// Description is shown in the Telegram command menu and is required.
	Description string
	// AdminOnly commands answer only TELEGRAM_ADMIN_ID and are never listed.
	AdminOnly bool
	// Hidden commands work but are left out of the menu.
	Hidden bool
	// Aliases are extra names without the leading slash, e.g. "go" for /start.
	Aliases []string
}

// Visible reports whether the command belongs in the public command menu.
func (c Command) Visible() bool {
	return !c.Hidden && !c.AdminOnly
}
