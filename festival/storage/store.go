// Package storage persists completed registrations. It is a write-only
// ledger: rows are appended and never updated or read back by the bot.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/festbot/core/database"
	"github.com/m3rciful/festbot/core/logger"
	"github.com/m3rciful/festbot/festival/registration"
	"github.com/m3rciful/festbot/festival/storage/migrations"
)

const (
	tableSpectators   = "spectators"
	tableParticipants = "participants"
)

const insertSpectatorSQL = `INSERT INTO spectators (user_id, date, family_size, name_age)
VALUES (:user_id, :date, :family_size, :name_age)
RETURNING id`

const insertParticipantSQL = `INSERT INTO participants
    (user_id, team_size, team_name, location, participants_info, special_status, phone, accommodation)
VALUES
    (:user_id, :team_size, :team_name, :location, :participants_info, :special_status, :phone, :accommodation)
RETURNING id`

// InsertError wraps a failed append with the table it targeted.
type InsertError struct {
	Table string
	Err   error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert into %s: %v", e.Table, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }

// Code is picked up by handler summary logs as err_code.
func (e *InsertError) Code() string { return "insert_failed" }

// Store writes registrations through sqlx. It is safe for concurrent use;
// write serialization is left to the database.
type Store struct {
	db  *sqlx.DB
	cfg database.Config
}

// New wraps an open connection. cfg must describe the same database; it is
// used by InitSchema to locate the migration set and migration URL.
func New(db *sqlx.DB, cfg database.Config) *Store {
	return &Store{db: db, cfg: cfg}
}

// InitSchema creates both tables if absent. Safe to call on every start.
func (s *Store) InitSchema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.cfg.Normalize(); err != nil {
		return err
	}
	src, err := migrations.For(s.cfg.Driver)
	if err != nil {
		return err
	}
	if _, err := database.RunMigrations(s.cfg, src); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// InsertSpectator appends one spectator row and returns its id.
func (s *Store) InsertSpectator(ctx context.Context, rec registration.Spectator) (int64, error) {
	return s.insert(ctx, tableSpectators, insertSpectatorSQL, rec, rec.UserID)
}

// InsertParticipant validates and appends one participant row and returns its id.
func (s *Store) InsertParticipant(ctx context.Context, rec registration.Participant) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, &InsertError{Table: tableParticipants, Err: err}
	}
	return s.insert(ctx, tableParticipants, insertParticipantSQL, rec, rec.UserID)
}

func (s *Store) insert(ctx context.Context, table, query string, arg any, userID int64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, &InsertError{Table: table, Err: fmt.Errorf("storage is not configured")}
	}
	if err := ctx.Err(); err != nil {
		return 0, &InsertError{Table: table, Err: err}
	}

	start := time.Now()
	id, err := s.insertReturningID(ctx, query, arg)
	took := time.Since(start)
	if err != nil {
		logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.insert",
			slog.String("status", "fail"),
			slog.String("table", table),
			slog.Int64("user_id", userID),
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)
		return 0, &InsertError{Table: table, Err: err}
	}

	logger.LogEvent(ctx, logger.Store, slog.LevelInfo, "store.insert",
		slog.String("status", "ok"),
		slog.String("table", table),
		slog.Int64("user_id", userID),
		slog.Int64("row_id", id),
		slog.Duration("duration", took),
	)
	return id, nil
}

func (s *Store) insertReturningID(ctx context.Context, query string, arg any) (int64, error) {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return 0, fmt.Errorf("bind: %w", err)
	}
	var id int64
	if err := s.db.QueryRowxContext(ctx, s.db.Rebind(bound), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
