package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/festbot/core/telegram"
	"github.com/m3rciful/festbot/core/telegram/commands"
)

func offlineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b
}

func textUpdate(text string) tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{
		Sender: &tele.User{ID: 9},
		Chat:   &tele.Chat{ID: 9, Type: tele.ChatPrivate},
		Text:   text,
	}}
}

func TestTextRoutesFallback(t *testing.T) {
	b := offlineBot(t)
	reg := tg.NewRegistry()
	var got []string
	reg.SetTextFallback(func(c tele.Context) error {
		got = append(got, c.Text())
		return nil
	})
	require.NoError(t, reg.RegisterCommand("/start", commands.Command{
		Description: "start",
		Aliases:     []string{"начать"},
		Handler: func(c tele.Context) error {
			got = append(got, "cmd")
			return nil
		},
	}))

	routes := TextRoutes(reg)
	require.Len(t, routes, 1)
	h := routes[0].Handler

	require.NoError(t, h(b.NewContext(textUpdate("Ivan, 34"))))
	require.NoError(t, h(b.NewContext(textUpdate("/начать"))))
	assert.Equal(t, []string{"Ivan, 34", "cmd"}, got)
}

func TestTextRoutesBareCommandWordIsText(t *testing.T) {
	b := offlineBot(t)
	reg := tg.NewRegistry()
	var got []string
	reg.SetTextFallback(func(c tele.Context) error {
		got = append(got, c.Text())
		return nil
	})
	require.NoError(t, reg.RegisterCommand("/start", commands.Command{
		Description: "start",
		Aliases:     []string{"начать"},
		Handler: func(c tele.Context) error {
			got = append(got, "cmd")
			return nil
		},
	}))

	h := TextRoutes(reg)[0].Handler
	require.NoError(t, h(b.NewContext(textUpdate("start"))))
	require.NoError(t, h(b.NewContext(textUpdate("начать"))))
	require.NoError(t, h(b.NewContext(textUpdate("/start"))))
	assert.Equal(t, []string{"start", "начать", "cmd"}, got)
}

type codedErr struct{}

func (codedErr) Error() string { return "boom" }
func (codedErr) Code() string  { return "insert failed" }

type plainErr struct{}

func (*plainErr) Error() string { return "plain" }

func TestDeriveErrorCode(t *testing.T) {
	assert.Equal(t, "INSERT_FAILED", deriveErrorCode(codedErr{}))
	assert.Equal(t, "PLAINERR", deriveErrorCode(&plainErr{}))
	assert.Equal(t, "", deriveErrorCode(nil))
	assert.NotEmpty(t, deriveErrorCode(errors.New("x")))
}

func TestNormalizeHandlerName(t *testing.T) {
	assert.Equal(t, "start", normalizeHandlerName("/Start"))
	assert.Equal(t, "unknown", normalizeHandlerName(" "))
	assert.Equal(t, "date_31", normalizeHandlerName("date_31"))
}
