package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func offlineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b
}

func messageFrom(b *tele.Bot, id int, userID int64) tele.Context {
	return b.NewContext(tele.Update{ID: id, Message: &tele.Message{
		Sender: &tele.User{ID: userID},
		Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		Text:   "hi",
	}})
}

func callbackFrom(b *tele.Bot, id int, userID int64) tele.Context {
	return b.NewContext(tele.Update{ID: id, Callback: &tele.Callback{
		Sender: &tele.User{ID: userID},
		Data:   "\fdate_31",
	}})
}

func TestRateLimitDropsBurst(t *testing.T) {
	b := offlineBot(t)
	clock := time.Unix(1_700_000_000, 0)
	limited := 0
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Second,
		Now:       func() time.Time { return clock },
		OnLimited: func(tele.Context) error { limited++; return nil },
	})
	calls := 0
	h := mw(func(tele.Context) error { calls++; return nil })

	require.NoError(t, h(messageFrom(b, 1, 5)))
	require.NoError(t, h(messageFrom(b, 2, 5)))
	require.NoError(t, h(messageFrom(b, 3, 6)))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, limited)

	clock = clock.Add(2 * time.Second)
	require.NoError(t, h(messageFrom(b, 4, 5)))
	assert.Equal(t, 3, calls)
}

func TestRateLimitExcludesCallbacks(t *testing.T) {
	b := offlineBot(t)
	clock := time.Unix(1_700_000_000, 0)
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval: time.Minute,
		Exclude:  map[string]struct{}{kindCallback: {}},
		Now:      func() time.Time { return clock },
	})
	calls := 0
	h := mw(func(tele.Context) error { calls++; return nil })

	for i := 0; i < 3; i++ {
		require.NoError(t, h(callbackFrom(b, i+1, 5)))
	}
	assert.Equal(t, 3, calls)
}

func TestRecoverMiddleware(t *testing.T) {
	b := offlineBot(t)
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	assert.NotPanics(t, func() {
		assert.NoError(t, h(messageFrom(b, 1, 5)))
	})
}
