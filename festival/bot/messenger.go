package bot

import (
	"context"
	"errors"
	"sync"

	tghelpers "github.com/m3rciful/festbot/core/telegram/helpers"
	"github.com/m3rciful/festbot/core/telegram/keyboard"
	"github.com/m3rciful/festbot/core/telegram/sender"
	"github.com/m3rciful/festbot/festival/flow"
)

var errNotBound = errors.New("bot: messenger is not bound to a Telegram API")

// Messenger delivers engine output to Telegram private chats. Sends are
// synchronous so a conversation step completes only after its messages left.
type Messenger struct {
	sender *sender.Sender

	mu  sync.RWMutex
	api tghelpers.API
}

var _ flow.Messenger = (*Messenger)(nil)

// NewMessenger returns an unbound messenger; call Bind before use.
func NewMessenger(s *sender.Sender) *Messenger {
	return &Messenger{sender: s}
}

// Bind attaches the Telegram API, normally the running *tele.Bot.
func (m *Messenger) Bind(api tghelpers.API) {
	m.mu.Lock()
	m.api = api
	m.mu.Unlock()
}

func (m *Messenger) bound() (tghelpers.API, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.api == nil {
		return nil, errNotBound
	}
	return m.api, nil
}

// SendText sends plain text.
func (m *Messenger) SendText(ctx context.Context, userID int64, text string) error {
	api, err := m.bound()
	if err != nil {
		return err
	}
	return tghelpers.SendText(ctx, m.sender, api, userID, text)
}

// SendOptions sends text with an inline keyboard, perRow buttons per row.
func (m *Messenger) SendOptions(ctx context.Context, userID int64, text string, options []flow.Option, perRow int) error {
	api, err := m.bound()
	if err != nil {
		return err
	}
	btns := make([]keyboard.InlineBtn, len(options))
	for i, o := range options {
		btns[i] = keyboard.InlineBtn{Text: o.Label, Unique: o.Value}
	}
	return tghelpers.SendText(ctx, m.sender, api, userID, text, keyboard.InlineButtonsNPerRow(btns, perRow))
}
