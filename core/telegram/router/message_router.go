package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/festbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextRoutes routes plain text. Slash-prefixed text that names a command or
// one of its aliases goes to that command; everything else, including a bare
// word that happens to match a command, goes to the registry text fallback.
func TextRoutes(reg *tg.Registry) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()

		if reg != nil {
			if text := strings.TrimSpace(c.Text()); strings.HasPrefix(text, "/") {
				if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
					return handleWithSummary(c, normalizeHandlerName(key), start, "", "", cmd.Handler)
				}
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "text", start, "", "", fb)
			}
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ignored", nil)
		return nil
	}

	return []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
}
