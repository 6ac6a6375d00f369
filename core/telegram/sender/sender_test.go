package sender

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestSenderRetriesTransientErrors(t *testing.T) {
	s := New(Options{MaxRetries: 2, RetryBackoff: time.Millisecond})
	calls := 0
	err := s.Do(context.Background(), "send.text", "sendMessage", func() error {
		calls++
		if calls < 3 {
			return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Zero(t, s.ErrorCount())
}

func TestSenderDoesNotRetryAPIErrors(t *testing.T) {
	s := New(Options{MaxRetries: 3, RetryBackoff: time.Millisecond})
	calls := 0
	apiErr := &tele.Error{Code: 400, Description: "Bad Request: chat not found"}
	err := s.Do(context.Background(), "send.text", "sendMessage", func() error {
		calls++
		return apiErr
	})
	require.ErrorIs(t, err, apiErr)
	assert.Equal(t, 1, calls)
	assert.EqualValues(t, 1, s.ErrorCount())
	assert.Equal(t, "http_4xx", classifyError(err))
}

func TestSenderGivesUpAfterMaxRetries(t *testing.T) {
	s := New(Options{MaxRetries: 1, RetryBackoff: time.Millisecond})
	calls := 0
	err := s.Do(context.Background(), "send.text", "", func() error {
		calls++
		return &net.OpError{Op: "dial", Err: errors.New("no route")}
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "dial", classifyError(err))
}

func TestSanitizeErrorMessageRedactsToken(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:ABC-def_1/sendMessage": timeout`)
	assert.NotContains(t, sanitizeErrorMessage(err), "ABC-def_1")
	assert.Contains(t, sanitizeErrorMessage(err), "bot<redacted>")
}
