package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		name    string
		cb      *tele.Callback
		key     string
		payload string
	}{
		{name: "nil", cb: nil},
		{name: "unique only", cb: &tele.Callback{Data: "\fdate_31"}, key: "date_31"},
		{name: "unique and payload", cb: &tele.Callback{Data: "\fteam|3"}, key: "team", payload: "3"},
		{name: "plain data", cb: &tele.Callback{Data: "spectator"}, key: "spectator"},
		{name: "resolved unique", cb: &tele.Callback{Unique: "room", Data: "x"}, key: "room", payload: "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, payload := ParseCallbackData(tc.cb)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.payload, payload)
		})
	}
}
