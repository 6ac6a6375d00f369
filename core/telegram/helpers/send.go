package helpers

import (
	"context"

	"github.com/m3rciful/festbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// API is the subset of *tele.Bot used to deliver messages.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// SendText sends raw text (no parse mode) to the chat of userID through s.
// A nil sender sends once without retries.
func SendText(ctx context.Context, s *sender.Sender, api API, userID int64, text string, markup ...*tele.ReplyMarkup) error {
	opts := &tele.SendOptions{DisableWebPagePreview: true}
	action := "send.text"
	if len(markup) > 0 && markup[0] != nil {
		opts.ReplyMarkup = markup[0]
		action = "send.keyboard"
	}
	run := func() error {
		_, err := api.Send(tele.ChatID(userID), text, opts)
		return err
	}
	if s == nil {
		return run()
	}
	return s.Do(ctx, action, "sendMessage", run)
}
