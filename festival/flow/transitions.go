package flow

import (
	"context"
	"fmt"

	"github.com/m3rciful/festbot/core/telegram/state"
	"github.com/m3rciful/festbot/festival/registration"
)

type transitionKey struct {
	state state.State
	kind  Kind
}

type stepHandler func(e *Engine, ctx context.Context, sess state.Session, ev Event) (Outcome, error)

// transitions lists every (step, input) pair the conversation accepts.
// Role selection and /start are handled before the table is consulted.
func transitions() map[transitionKey]stepHandler {
	return map[transitionKey]stepHandler{
		{AwaitingDate, KindButton}:           (*Engine).onVisitDate,
		{AwaitingAttendanceMode, KindButton}: (*Engine).onAttendanceMode,
		{AwaitingNameAge, KindText}:          (*Engine).onNameAge,

		{AwaitingTeamSize, KindButton}:       (*Engine).onTeamSize,
		{AwaitingTeamName, KindText}:         (*Engine).onTeamName,
		{AwaitingLocation, KindText}:         (*Engine).onLocation,
		{AwaitingParticipantsInfo, KindText}: (*Engine).onParticipantsInfo,
		{AwaitingSpecialStatus, KindButton}:  (*Engine).onSpecialStatus,
		{AwaitingPhone, KindText}:            (*Engine).onPhone,
		{AwaitingAccommodation, KindButton}:  (*Engine).onAccommodation,
	}
}

func (e *Engine) onVisitDate(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	opt, ok := registration.FindOption(registration.VisitDates, ev.Value)
	if !ok {
		return e.unexpected(ctx, sess, true, ev)
	}
	return e.advance(ctx, sess, fieldVisitDate, opt.Stored, AwaitingAttendanceMode,
		text(fmt.Sprintf(textDateChosen, opt.Stored)),
		prompt(textAskAttendance, registration.AttendanceModes, rowsAttendance),
	)
}

func (e *Engine) onAttendanceMode(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	opt, ok := registration.FindOption(registration.AttendanceModes, ev.Value)
	if !ok {
		return e.unexpected(ctx, sess, true, ev)
	}
	return e.advance(ctx, sess, fieldAttendanceMode, opt.Stored, AwaitingNameAge,
		text(fmt.Sprintf(textAttendanceChosen, opt.Stored)),
		text(textAskNameAge),
	)
}

func (e *Engine) onNameAge(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	if blank(ev.Value) {
		return e.unexpected(ctx, sess, true, ev)
	}
	rec := registration.Spectator{
		UserID:         sess.UserID,
		VisitDate:      sess.Answer(fieldVisitDate),
		AttendanceMode: sess.Answer(fieldAttendanceMode),
		NameAge:        ev.Value,
	}
	return e.finish(ctx, sess, "spectators", textSpectatorComplete, func() (int64, error) {
		return e.store.InsertSpectator(ctx, rec)
	})
}

func (e *Engine) onTeamSize(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	opt, ok := registration.FindOption(registration.TeamSizes, ev.Value)
	if !ok {
		return e.unexpected(ctx, sess, true, ev)
	}
	return e.advance(ctx, sess, fieldTeamSize, opt.Stored, AwaitingTeamName,
		text(fmt.Sprintf(textTeamSizeChosen, opt.Stored)),
		text(textAskTeamName),
	)
}

func (e *Engine) onTeamName(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	if blank(ev.Value) {
		return e.unexpected(ctx, sess, true, ev)
	}
	return e.advance(ctx, sess, fieldTeamName, ev.Value, AwaitingLocation, text(textAskLocation))
}

func (e *Engine) onLocation(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	if blank(ev.Value) {
		return e.unexpected(ctx, sess, true, ev)
	}
	return e.advance(ctx, sess, fieldLocation, ev.Value, AwaitingParticipantsInfo, text(textAskParticipants))
}

func (e *Engine) onParticipantsInfo(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	if blank(ev.Value) {
		return e.unexpected(ctx, sess, true, ev)
	}
	return e.advance(ctx, sess, fieldParticipantsInfo, ev.Value, AwaitingSpecialStatus,
		prompt(textAskSpecialStatus, registration.SpecialStatuses, rowsSpecialStatus),
	)
}

func (e *Engine) onSpecialStatus(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	opt, ok := registration.FindOption(registration.SpecialStatuses, ev.Value)
	if !ok {
		return e.unexpected(ctx, sess, true, ev)
	}
	ask := textAskPhone
	if opt.Stored == "yes" {
		ask = textAskPhonePreferred
	}
	return e.advance(ctx, sess, fieldSpecialStatus, opt.Stored, AwaitingPhone, text(ask))
}

func (e *Engine) onPhone(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	if blank(ev.Value) {
		return e.unexpected(ctx, sess, true, ev)
	}
	return e.advance(ctx, sess, fieldPhone, ev.Value, AwaitingAccommodation,
		prompt(textAskAccommodation, registration.Accommodations, rowsAccommodations),
	)
}

// onAccommodation quotes the package price, then persists the team.
func (e *Engine) onAccommodation(ctx context.Context, sess state.Session, ev Event) (Outcome, error) {
	opt, ok := registration.FindOption(registration.Accommodations, ev.Value)
	if !ok {
		return e.unexpected(ctx, sess, true, ev)
	}
	if price, ok := registration.PriceFor(opt.Stored); ok {
		if err := e.msg.SendText(ctx, sess.UserID, fmt.Sprintf(textPriceQuote, price.Adult, price.Child)); err != nil {
			return OutcomeIgnored, fmt.Errorf("send price quote: %w", err)
		}
	}
	rec := registration.Participant{
		UserID:           sess.UserID,
		TeamSize:         atoi(sess.Answer(fieldTeamSize)),
		TeamName:         sess.Answer(fieldTeamName),
		Location:         sess.Answer(fieldLocation),
		ParticipantsInfo: sess.Answer(fieldParticipantsInfo),
		SpecialStatus:    sess.Answer(fieldSpecialStatus),
		Phone:            sess.Answer(fieldPhone),
		Accommodation:    opt.Stored,
	}
	return e.finish(ctx, sess, "participants", textParticipantComplete, func() (int64, error) {
		return e.store.InsertParticipant(ctx, rec)
	})
}
