package router

import (
	"log/slog"
	"time"

	tg "github.com/m3rciful/festbot/core/telegram"
	"github.com/m3rciful/festbot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute returns a handler that routes all callbacks through the
// registry by key. The callback is answered before the handler runs.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key, _ := callbacks.ParseCallbackData(c.Callback())
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "skip", "ignored", reg.CallbackNotFound(), extras...)
		}
		return handleWithSummary(c, name, start, "", "", cbHandler, extras...)
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}
