package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/festbot/core/logger"
	"github.com/m3rciful/festbot/core/telegram/state"
	"github.com/m3rciful/festbot/festival/registration"
)

// Engine drives registration conversations. Handle must not be called
// concurrently for the same user; different users may run in parallel.
type Engine struct {
	sessions state.Manager
	msg      Messenger
	store    Store
	opts     Options
	table    map[transitionKey]stepHandler
}

// NewEngine wires an engine to its session store, outbound messenger and
// registration store.
func NewEngine(sessions state.Manager, msg Messenger, store Store, opts Options) *Engine {
	return &Engine{
		sessions: sessions,
		msg:      msg,
		store:    store,
		opts:     opts,
		table:    transitions(),
	}
}

// Handle applies one event. Input that does not fit the user's current step
// returns OutcomeIgnored and leaves the session untouched. Messenger failures
// are returned; storage failures are reported to the user and end the
// conversation with OutcomeFailed and a nil error.
func (e *Engine) Handle(ctx context.Context, ev Event) (Outcome, error) {
	sess, active := e.sessions.Get(ev.UserID)
	if active {
		ctx = logger.WithFlowID(ctx, sess.ID)
	}

	var (
		out Outcome
		err error
	)
	switch ev.Kind {
	case KindStart:
		out, err = e.welcome(ctx, ev)
	case KindRole:
		out, err = e.chooseRole(ctx, ev)
	default:
		handler, ok := e.table[transitionKey{state: sess.State, kind: ev.Kind}]
		if !ok {
			out, err = e.unexpected(ctx, sess, active, ev)
			break
		}
		out, err = handler(e, ctx, sess, ev)
	}

	e.logStep(ctx, sess.State, ev, out, err)
	return out, err
}

func (e *Engine) welcome(ctx context.Context, ev Event) (Outcome, error) {
	if err := e.msg.SendOptions(ctx, ev.UserID, textWelcome, toOptions(registration.Roles), rowsRoles); err != nil {
		return OutcomeWelcomed, fmt.Errorf("send welcome: %w", err)
	}
	return OutcomeWelcomed, nil
}

// chooseRole starts a branch. It is accepted in any state and discards
// answers of a conversation in progress.
func (e *Engine) chooseRole(ctx context.Context, ev Event) (Outcome, error) {
	role, ok := RoleOf(ev.Value)
	if !ok {
		return OutcomeIgnored, nil
	}

	switch role {
	case registration.RoleSpectator:
		sess := e.sessions.Start(ev.UserID, AwaitingDate)
		ctx = logger.WithFlowID(ctx, sess.ID)
		if err := e.msg.SendOptions(ctx, ev.UserID, textAskDate, toOptions(registration.VisitDates), rowsVisitDates); err != nil {
			return OutcomeStarted, fmt.Errorf("send date prompt: %w", err)
		}
	case registration.RoleParticipant:
		sess := e.sessions.Start(ev.UserID, AwaitingTeamSize)
		ctx = logger.WithFlowID(ctx, sess.ID)
		if err := e.msg.SendOptions(ctx, ev.UserID, textAskTeamSize, toOptions(registration.TeamSizes), rowsTeamSizes); err != nil {
			return OutcomeStarted, fmt.Errorf("send team size prompt: %w", err)
		}
	}
	return OutcomeStarted, nil
}

func (e *Engine) unexpected(ctx context.Context, sess state.Session, active bool, ev Event) (Outcome, error) {
	if !active || !e.opts.HintOnUnexpected {
		return OutcomeIgnored, nil
	}
	hint := textHintText
	if _, wantsButton := e.table[transitionKey{state: sess.State, kind: KindButton}]; wantsButton {
		hint = textHintButtons
	}
	if err := e.msg.SendText(ctx, ev.UserID, hint); err != nil {
		return OutcomeIgnored, fmt.Errorf("send hint: %w", err)
	}
	return OutcomeIgnored, nil
}

// advance records field=value, moves to next and sends the given messages in order.
func (e *Engine) advance(ctx context.Context, sess state.Session, field, value string, next state.State, msgs ...outbound) (Outcome, error) {
	if !e.sessions.Advance(sess.UserID, field, value, next) {
		return OutcomeIgnored, nil
	}
	for _, m := range msgs {
		if err := m.send(ctx, e.msg, sess.UserID); err != nil {
			return OutcomeAdvanced, err
		}
	}
	return OutcomeAdvanced, nil
}

// finish persists the record via insert, ends the conversation and tells the user.
func (e *Engine) finish(ctx context.Context, sess state.Session, table, success string, insert func() (int64, error)) (Outcome, error) {
	id, err := insert()
	e.sessions.Clear(sess.UserID)

	if err != nil {
		logger.LogEvent(ctx, logger.Flow, slog.LevelError, "flow.persist",
			slog.String("status", "fail"),
			slog.String("table", table),
			slog.String("err", err.Error()),
			slog.String("err_code", errorCode(err)),
		)
		if sendErr := e.msg.SendText(ctx, sess.UserID, textRegistrationFailed); sendErr != nil {
			return OutcomeFailed, fmt.Errorf("send failure notice: %w", sendErr)
		}
		return OutcomeFailed, nil
	}

	logger.LogEvent(ctx, logger.Flow, slog.LevelInfo, "flow.persist",
		slog.String("status", "ok"),
		slog.String("table", table),
		slog.Int64("row_id", id),
	)
	if err := e.msg.SendText(ctx, sess.UserID, success); err != nil {
		return OutcomeCompleted, fmt.Errorf("send confirmation: %w", err)
	}
	return OutcomeCompleted, nil
}

func (e *Engine) logStep(ctx context.Context, from state.State, ev Event, out Outcome, err error) {
	level := slog.LevelInfo
	if out == OutcomeIgnored {
		level = slog.LevelDebug
	}
	attrs := []slog.Attr{
		slog.Int64("user_id", ev.UserID),
		slog.String("state", string(from)),
		slog.String("input", ev.Kind.String()),
		slog.String("outcome", string(out)),
	}
	if cur, ok := e.sessions.Get(ev.UserID); ok && cur.State != from {
		attrs = append(attrs, slog.String("next_state", string(cur.State)))
	}
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	logger.LogEvent(ctx, logger.Flow, level, "flow.step", attrs...)
}

func errorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return "unknown"
}

// outbound is one message sent after a transition.
type outbound struct {
	text    string
	options []registration.Option
	perRow  int
}

func text(s string) outbound { return outbound{text: s} }

func prompt(s string, options []registration.Option, perRow int) outbound {
	return outbound{text: s, options: options, perRow: perRow}
}

func (o outbound) send(ctx context.Context, m Messenger, userID int64) error {
	if len(o.options) == 0 {
		if err := m.SendText(ctx, userID, o.text); err != nil {
			return fmt.Errorf("send text: %w", err)
		}
		return nil
	}
	if err := m.SendOptions(ctx, userID, o.text, toOptions(o.options), o.perRow); err != nil {
		return fmt.Errorf("send options: %w", err)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
