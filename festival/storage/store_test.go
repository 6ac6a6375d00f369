package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/festbot/core/database"
	"github.com/m3rciful/festbot/festival/registration"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "festival.db"),
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := New(db, cfg)
	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InitSchema(context.Background()))
	assert.Equal(t, 0, countRows(t, s, tableSpectators))
	assert.Equal(t, 0, countRows(t, s, tableParticipants))
}

func TestInsertSpectatorAppends(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := registration.Spectator{
		UserID:         42,
		VisitDate:      "31 мая",
		AttendanceMode: "один",
		NameAge:        "Ivan, 34",
	}

	first, err := s.InsertSpectator(ctx, rec)
	require.NoError(t, err)
	second, err := s.InsertSpectator(ctx, rec)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, countRows(t, s, tableSpectators))

	var got struct {
		UserID         int64  `db:"user_id"`
		VisitDate      string `db:"date"`
		AttendanceMode string `db:"family_size"`
		NameAge        string `db:"name_age"`
	}
	require.NoError(t, s.db.Get(&got,
		"SELECT user_id, date, family_size, name_age FROM spectators WHERE id = ?", first))
	assert.Equal(t, rec.UserID, got.UserID)
	assert.Equal(t, rec.VisitDate, got.VisitDate)
	assert.Equal(t, rec.AttendanceMode, got.AttendanceMode)
	assert.Equal(t, rec.NameAge, got.NameAge)
}

func TestInsertParticipant(t *testing.T) {
	s := newTestStore(t)
	rec := registration.Participant{
		UserID:           7,
		TeamSize:         3,
		TeamName:         "Щуки",
		Location:         "Самара",
		ParticipantsInfo: "Иванов И.И. 01.01.1980",
		SpecialStatus:    "no",
		Phone:            "+79990000000",
		Accommodation:    "rent_tent",
	}
	id, err := s.InsertParticipant(context.Background(), rec)
	require.NoError(t, err)

	var got struct {
		TeamSize      int    `db:"team_size"`
		TeamName      string `db:"team_name"`
		Accommodation string `db:"accommodation"`
		Phone         string `db:"phone"`
	}
	require.NoError(t, s.db.Get(&got,
		"SELECT team_size, team_name, accommodation, phone FROM participants WHERE id = ?", id))
	assert.Equal(t, 3, got.TeamSize)
	assert.Equal(t, "Щуки", got.TeamName)
	assert.Equal(t, "rent_tent", got.Accommodation)
	assert.Equal(t, "+79990000000", got.Phone)
}

func TestInsertParticipantRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	_, err := s.InsertParticipant(context.Background(), registration.Participant{
		UserID:        7,
		TeamSize:      6,
		SpecialStatus: "no",
		Accommodation: "home",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, registration.ErrInvalidRecord)

	var ie *InsertError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, tableParticipants, ie.Table)
	assert.Equal(t, 0, countRows(t, s, tableParticipants))
}

func TestInsertFailureIsTyped(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.db.Close())

	_, err := s.InsertSpectator(context.Background(), registration.Spectator{UserID: 1})
	require.Error(t, err)

	var ie *InsertError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, tableSpectators, ie.Table)
	assert.Equal(t, "insert_failed", ie.Code())
}

func TestInsertWithoutDatabase(t *testing.T) {
	var s *Store
	_, err := s.InsertSpectator(context.Background(), registration.Spectator{})
	var ie *InsertError
	require.True(t, errors.As(err, &ie))
}
