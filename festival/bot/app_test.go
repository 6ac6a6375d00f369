package bot

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/festbot/core/database"
	"github.com/m3rciful/festbot/core/telegram/router"
	festconfig "github.com/m3rciful/festbot/festival/config"
	"github.com/m3rciful/festbot/festival/flow"
	"github.com/m3rciful/festbot/festival/storage"
)

type recordingAPI struct {
	mu    sync.Mutex
	texts []string
	kbs   []*tele.ReplyMarkup
}

func (a *recordingAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.texts = append(a.texts, what.(string))
	var kb *tele.ReplyMarkup
	if len(opts) > 0 {
		if so, ok := opts[0].(*tele.SendOptions); ok {
			kb = so.ReplyMarkup
		}
	}
	a.kbs = append(a.kbs, kb)
	return &tele.Message{}, nil
}

func (a *recordingAPI) sent() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.texts...)
}

type fixture struct {
	app *App
	api *recordingAPI
	bot *tele.Bot
	cfg *festconfig.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &festconfig.Config{}
	cfg.Database = database.Config{Driver: database.DriverSQLite, Path: filepath.Join(t.TempDir(), "festival.db")}
	cfg.Flow = festconfig.FlowConfig{SessionTTL: time.Hour, SweepInterval: time.Minute, QueueDepth: 16}
	cfg.Sender.MaxRetries = 0

	db, err := database.Connect(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, storage.New(db, cfg.Database).InitSchema(t.Context()))

	app, err := New(cfg, db)
	require.NoError(t, err)
	api := &recordingAPI{}
	app.messenger.Bind(api)

	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return &fixture{app: app, api: api, bot: b, cfg: cfg}
}

const uid = int64(555)

func (f *fixture) callback(t *testing.T, data string) {
	t.Helper()
	h, ok := f.app.registry.GetCallback(data)
	require.True(t, ok, data)
	c := f.bot.NewContext(tele.Update{Callback: &tele.Callback{
		Sender: &tele.User{ID: uid},
		Data:   "\f" + data,
	}})
	require.NoError(t, h(c))
}

func (f *fixture) text(t *testing.T, s string) {
	t.Helper()
	c := f.bot.NewContext(tele.Update{Message: &tele.Message{
		Sender: &tele.User{ID: uid},
		Chat:   &tele.Chat{ID: uid, Type: tele.ChatPrivate},
		Text:   s,
	}})
	require.NoError(t, f.app.registry.TextFallback()(c))
}

func TestSpectatorRegistrationEndToEnd(t *testing.T) {
	f := newFixture(t)

	_, cmd, ok := f.app.registry.LookupCommand("/start")
	require.True(t, ok)
	require.NoError(t, cmd.Handler(f.bot.NewContext(tele.Update{Message: &tele.Message{
		Sender: &tele.User{ID: uid},
		Chat:   &tele.Chat{ID: uid, Type: tele.ChatPrivate},
		Text:   "/start",
	}})))

	f.callback(t, "spectator")
	f.callback(t, "date_31")
	f.callback(t, "family_size_1")
	f.text(t, "Ivan, 34")

	db := f.app.db
	f.app.queue.Close()

	var got struct {
		UserID         int64  `db:"user_id"`
		VisitDate      string `db:"date"`
		AttendanceMode string `db:"family_size"`
		NameAge        string `db:"name_age"`
	}
	require.NoError(t, db.Get(&got, "SELECT user_id, date, family_size, name_age FROM spectators"))
	assert.Equal(t, uid, got.UserID)
	assert.Equal(t, "31 мая", got.VisitDate)
	assert.Equal(t, "один", got.AttendanceMode)
	assert.Equal(t, "Ivan, 34", got.NameAge)

	sent := f.api.sent()
	require.NotEmpty(t, sent)
	assert.Contains(t, sent[0], "Выберите, как вы хотите участвовать")
	assert.Contains(t, sent[len(sent)-1], "Регистрация успешно завершена")

	require.NotNil(t, f.api.kbs[0])
	require.Len(t, f.api.kbs[0].InlineKeyboard, 2)
	assert.Equal(t, "spectator", f.api.kbs[0].InlineKeyboard[0][0].Unique)

	_, active := f.app.sessions.Get(uid)
	assert.False(t, active)

	f.app.Close()
}

func TestGroupChatsAreIgnored(t *testing.T) {
	f := newFixture(t)
	defer f.app.Close()

	c := f.bot.NewContext(tele.Update{Message: &tele.Message{
		Sender: &tele.User{ID: uid},
		Chat:   &tele.Chat{ID: -100, Type: tele.ChatGroup},
		Text:   "hello",
	}})
	require.NoError(t, f.app.registry.TextFallback()(c))
	f.app.queue.Close()
	assert.Empty(t, f.api.sent())
}

func TestRegistryCoversEveryButton(t *testing.T) {
	f := newFixture(t)
	defer f.app.Close()

	keys := f.app.registry.ListCallbacks()
	for _, k := range []string{"spectator", "participant", "date_both", "family_size_family",
		"team_2", "team_5", "special_status_yes", "accommodation_room"} {
		assert.Contains(t, keys, k)
	}
	assert.NotContains(t, keys, "team_6")
}

func TestRunOptions(t *testing.T) {
	f := newFixture(t)
	defer f.app.Close()

	opts, err := f.app.TelegramRunOptions()
	require.NoError(t, err)
	assert.Same(t, f.app.sender, opts.Sender)
	assert.NotEmpty(t, opts.Routes)
	assert.NotEmpty(t, opts.Middlewares)
}

func TestUnboundMessenger(t *testing.T) {
	m := NewMessenger(nil)
	err := m.SendText(t.Context(), 1, "hi")
	assert.ErrorIs(t, err, errNotBound)
}

func TestCommandWordAsTeamNameIsRecorded(t *testing.T) {
	f := newFixture(t)
	defer f.app.Close()

	f.callback(t, "participant")
	f.callback(t, "team_3")

	h := router.TextRoutes(f.app.registry)[0].Handler
	require.NoError(t, h(f.bot.NewContext(tele.Update{Message: &tele.Message{
		Sender: &tele.User{ID: uid},
		Chat:   &tele.Chat{ID: uid, Type: tele.ChatPrivate},
		Text:   "start",
	}})))
	f.app.queue.Close()

	sess, ok := f.app.sessions.Get(uid)
	require.True(t, ok)
	assert.Equal(t, flow.AwaitingLocation, sess.State)
	assert.Equal(t, "start", sess.Answer("team_name"))
}
