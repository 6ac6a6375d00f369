// Package registration holds the records written at the end of a
// conversation and the fixed option sets the conversation offers.
package registration

import (
	"errors"
	"time"
)

// ErrInvalidRecord reports a record that violates a field constraint.
var ErrInvalidRecord = errors.New("registration: invalid record")

// Role is the branch a user picks at the start of the conversation.
type Role string

const (
	RoleSpectator   Role = "spectator"
	RoleParticipant Role = "participant"
)

// Spectator is one completed spectator registration.
type Spectator struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	VisitDate      string    `db:"date"`
	AttendanceMode string    `db:"family_size"`
	NameAge        string    `db:"name_age"`
	RegisteredAt   time.Time `db:"registration_date"`
}

// Participant is one completed team registration.
type Participant struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	TeamSize         int       `db:"team_size"`
	TeamName         string    `db:"team_name"`
	Location         string    `db:"location"`
	ParticipantsInfo string    `db:"participants_info"`
	SpecialStatus    string    `db:"special_status"`
	Phone            string    `db:"phone"`
	Accommodation    string    `db:"accommodation"`
	RegisteredAt     time.Time `db:"registration_date"`
}

// Validate checks the constraints the option sets guarantee.
func (p Participant) Validate() error {
	if p.TeamSize < MinTeamSize || p.TeamSize > MaxTeamSize {
		return errors.Join(ErrInvalidRecord, errors.New("team size out of range"))
	}
	if _, ok := LookupOption(Accommodations, p.Accommodation); !ok {
		return errors.Join(ErrInvalidRecord, errors.New("unknown accommodation"))
	}
	if _, ok := LookupOption(SpecialStatuses, p.SpecialStatus); !ok {
		return errors.Join(ErrInvalidRecord, errors.New("unknown special status"))
	}
	return nil
}
