// Package commands describes slash commands exposed in the bot menu.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// Hidden commands are routed but left out of the Telegram menu.
	Hidden  bool
	Aliases []string
}
