// Package flow is the registration conversation: a per-user state machine
// that turns role selections, button presses and text replies into prompts
// and, at the last step, one persisted record.
package flow

import (
	"context"

	"github.com/m3rciful/festbot/core/telegram/state"
	"github.com/m3rciful/festbot/festival/registration"
)

// Conversation steps. A user without a session is ChoosingRole.
const (
	ChoosingRole = state.StateIdle

	AwaitingDate           state.State = "spectator.date"
	AwaitingAttendanceMode state.State = "spectator.attendance"
	AwaitingNameAge        state.State = "spectator.name_age"

	AwaitingTeamSize         state.State = "participant.team_size"
	AwaitingTeamName         state.State = "participant.team_name"
	AwaitingLocation         state.State = "participant.location"
	AwaitingParticipantsInfo state.State = "participant.info"
	AwaitingSpecialStatus    state.State = "participant.special_status"
	AwaitingPhone            state.State = "participant.phone"
	AwaitingAccommodation    state.State = "participant.accommodation"
)

// Answer keys inside a session.
const (
	fieldVisitDate        = "visit_date"
	fieldAttendanceMode   = "attendance_mode"
	fieldTeamSize         = "team_size"
	fieldTeamName         = "team_name"
	fieldLocation         = "location"
	fieldParticipantsInfo = "participants_info"
	fieldSpecialStatus    = "special_status"
	fieldPhone            = "phone"
)

// Kind classifies an inbound event.
type Kind int

const (
	// KindStart is the /start command.
	KindStart Kind = iota + 1
	// KindRole is a press on one of the two role buttons.
	KindRole
	// KindButton is any other inline button press.
	KindButton
	// KindText is a free-text message.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindRole:
		return "role"
	case KindButton:
		return "button"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Event is one user input. Value holds the callback value or the message text.
type Event struct {
	Kind   Kind
	UserID int64
	Value  string
}

// Outcome reports what Handle did with an event.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeWelcomed  Outcome = "welcomed"
	OutcomeStarted   Outcome = "started"
	OutcomeAdvanced  Outcome = "advanced"
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// Option is one button offered to the user.
type Option struct {
	Label string
	Value string
}

// Messenger delivers outbound messages to a user.
type Messenger interface {
	SendText(ctx context.Context, userID int64, text string) error
	SendOptions(ctx context.Context, userID int64, text string, options []Option, perRow int) error
}

// Store persists completed registrations.
type Store interface {
	InsertSpectator(ctx context.Context, rec registration.Spectator) (int64, error)
	InsertParticipant(ctx context.Context, rec registration.Participant) (int64, error)
}

// Options tunes engine behaviour.
type Options struct {
	// HintOnUnexpected makes the engine answer input it cannot use during an
	// active conversation with a short hint instead of dropping it silently.
	HintOnUnexpected bool
}

// RoleOf classifies a callback value as a role selection.
func RoleOf(value string) (registration.Role, bool) {
	opt, ok := registration.FindOption(registration.Roles, value)
	if !ok {
		return "", false
	}
	return registration.Role(opt.Stored), true
}

func toOptions(set []registration.Option) []Option {
	out := make([]Option, len(set))
	for i, o := range set {
		out[i] = Option{Label: o.Label, Value: o.Value}
	}
	return out
}
