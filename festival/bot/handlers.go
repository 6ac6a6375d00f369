package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/festbot/core/logger"
	"github.com/m3rciful/festbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/festbot/core/telegram/helpers"
	"github.com/m3rciful/festbot/core/telegram/queue"
	"github.com/m3rciful/festbot/festival/flow"

	tele "gopkg.in/telebot.v4"
)

func (a *App) onStart(c tele.Context) error {
	return a.dispatch(c, flow.KindStart, "")
}

func (a *App) onRole(c tele.Context) error {
	return a.dispatch(c, flow.KindRole, callbacks.CallbackKey(c))
}

func (a *App) onButton(c tele.Context) error {
	return a.dispatch(c, flow.KindButton, callbacks.CallbackKey(c))
}

func (a *App) onText(c tele.Context) error {
	return a.dispatch(c, flow.KindText, c.Text())
}

// dispatch queues the event on the sending user's queue.Keyed lane. The
// engine runs after the update handler returns, so a slow database or
// Telegram call for one user does not hold up anyone else.
func (a *App) dispatch(c tele.Context, kind flow.Kind, value string) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	if chat := c.Chat(); chat != nil && chat.Type != tele.ChatPrivate {
		return nil
	}

	ev := flow.Event{Kind: kind, UserID: user.ID, Value: value}
	ctx := tghelpers.BuildContext(c)

	err := a.queue.Submit(user.ID, func() { a.handle(ctx, ev) })
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, queue.ErrQueueFull) {
			level = slog.LevelWarn
		}
		logger.LogEvent(ctx, logger.Flow, level, "flow.enqueue",
			slog.String("status", "fail"),
			slog.String("input", kind.String()),
			slog.String("err", err.Error()),
		)
	}
	return nil
}

func (a *App) handle(ctx context.Context, ev flow.Event) {
	if _, err := a.engine.Handle(ctx, ev); err != nil {
		logger.LogEvent(ctx, logger.Flow, slog.LevelError, "flow.handle",
			slog.String("status", "fail"),
			slog.String("input", ev.Kind.String()),
			slog.String("err", err.Error()),
		)
	}
}
