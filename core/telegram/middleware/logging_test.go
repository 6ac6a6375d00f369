package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/festbot/core/logger"
	tghelpers "github.com/m3rciful/festbot/core/telegram/helpers"
)

func TestLoggerMiddlewareStoresUpdateContext(t *testing.T) {
	b := offlineBot(t)
	c := messageFrom(b, 42, 7)

	called := false
	err := LoggerMiddleware(func(c tele.Context) error {
		called = true
		ctx, ok := tghelpers.ContextFrom(c)
		require.True(t, ok)
		assert.Equal(t, int64(7), logger.UserIDFrom(ctx))
		assert.Equal(t, 42, logger.UpdateIDFrom(ctx))
		assert.NotEmpty(t, c.Get("rid"))
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestReceiptAttrsOmitMessageText(t *testing.T) {
	b := offlineBot(t)
	attrs := receiptAttrs(messageFrom(b, 1, 7))

	keys := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		keys[a.Key] = true
		assert.NotEqual(t, "hi", a.Value.String())
	}
	assert.True(t, keys["text_len"])
	assert.False(t, keys["text"])
}
