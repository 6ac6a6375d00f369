package helpers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/festbot/core/telegram/keyboard"
	"github.com/m3rciful/festbot/core/telegram/sender"
)

type recordingAPI struct {
	to    []tele.Recipient
	texts []string
	opts  []*tele.SendOptions
	err   error
}

func (a *recordingAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.to = append(a.to, to)
	a.texts = append(a.texts, what.(string))
	if len(opts) > 0 {
		a.opts = append(a.opts, opts[0].(*tele.SendOptions))
	}
	return &tele.Message{}, nil
}

func TestSendTextWithKeyboard(t *testing.T) {
	api := &recordingAPI{}
	s := sender.New(sender.Options{MaxRetries: 0, RetryBackoff: time.Millisecond})
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{{Text: "Yes", Unique: "yes"}})

	require.NoError(t, SendText(context.Background(), s, api, 77, "hello", markup))
	require.Len(t, api.texts, 1)
	assert.Equal(t, "hello", api.texts[0])
	assert.Equal(t, "77", api.to[0].Recipient())
	assert.Same(t, markup, api.opts[0].ReplyMarkup)
}

func TestSendTextReturnsError(t *testing.T) {
	api := &recordingAPI{err: errors.New("forbidden: bot was blocked by the user")}
	err := SendText(context.Background(), nil, api, 1, "hello")
	require.Error(t, err)
	assert.Empty(t, api.texts)
}
