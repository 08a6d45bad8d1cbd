/*
Package db provides the PostgreSQL-backed persistence layer.

The Store implements both the room and user storage contracts on one pgx
pool. Join-race safety comes from SELECT ... FOR UPDATE row locks inside
transactions; code and participant uniqueness are enforced by table
constraints, surfaced to the engine as conflict sentinels.
*/
package db

import (
	"context"
	"errors"
	"fmt"

	"doodlepair/internal/app/room"
	"doodlepair/internal/app/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the query surface shared by the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store implements room.Store and user.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const roomColumns = "id, code, user1_id, user2_id, created_at"

// scanRoom reads one room row, mapping pgx.ErrNoRows to (nil, nil).
func scanRoom(row pgx.Row) (*room.Room, error) {
	var (
		rm    room.Room
		id    pgtype.UUID
		user2 pgtype.Text
	)

	err := row.Scan(&id, &rm.Code, &rm.User1ID, &user2, &rm.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan room: %w", err)
	}

	rm.ID = uuid.UUID(id.Bytes)
	rm.User2ID = user2.String
	return &rm, nil
}

func findRoomByCode(ctx context.Context, q querier, code string) (*room.Room, error) {
	return scanRoom(q.QueryRow(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE code = $1", code))
}

func findRoomByParticipant(ctx context.Context, q querier, userID string) (*room.Room, error) {
	return scanRoom(q.QueryRow(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE user1_id = $1 OR user2_id = $1", userID))
}

// FindByCode returns the live room with the given code without locking it.
func (s *Store) FindByCode(ctx context.Context, code string) (*room.Room, error) {
	return findRoomByCode(ctx, s.pool, code)
}

// FindByParticipant returns the room the user participates in, if any.
func (s *Store) FindByParticipant(ctx context.Context, userID string) (*room.Room, error) {
	return findRoomByParticipant(ctx, s.pool, userID)
}

// CodeExists reports whether a live room currently holds the code.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM rooms WHERE code = $1)", code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check room code: %w", err)
	}
	return exists, nil
}

// InTx runs fn inside one database transaction. Row locks taken by fn are
// released on commit or rollback, so a crashed holder never leaves a room
// permanently unjoinable.
func (s *Store) InTx(ctx context.Context, fn func(tx room.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&storeTx{tx: tx})
	})
}

// Get returns the user with the given id, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id string) (*user.User, error) {
	var (
		u      user.User
		roomID pgtype.UUID
	)

	err := s.pool.QueryRow(ctx,
		"SELECT id, name, email, room_id FROM users WHERE id = $1", id).
		Scan(&u.ID, &u.Name, &u.Email, &roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if roomID.Valid {
		rid := uuid.UUID(roomID.Bytes)
		u.RoomID = &rid
	}
	return &u, nil
}

// Create persists a new user record. Losing the unique-identity race
// surfaces as user.ErrConflict.
func (s *Store) Create(ctx context.Context, u *user.User) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO users (id, name, email) VALUES ($1, $2, $3)",
		u.ID, u.Name, u.Email)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("create user %q: %w", u.ID, user.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// storeTx implements room.Tx on an open pgx transaction.
type storeTx struct {
	tx pgx.Tx
}

// FindByCodeForUpdate locks the room row exclusively for the rest of the
// transaction, serializing all joins to one code.
func (t *storeTx) FindByCodeForUpdate(ctx context.Context, code string) (*room.Room, error) {
	return scanRoom(t.tx.QueryRow(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE code = $1 FOR UPDATE", code))
}

func (t *storeTx) FindByParticipant(ctx context.Context, userID string) (*room.Room, error) {
	return findRoomByParticipant(ctx, t.tx, userID)
}

// Insert persists a new waiting room. Duplicate codes and participants
// already bound to a room surface as room.ErrConflict.
func (t *storeTx) Insert(ctx context.Context, r *room.Room) error {
	_, err := t.tx.Exec(ctx,
		"INSERT INTO rooms (id, code, user1_id, created_at) VALUES ($1, $2, $3, $4)",
		pgtype.UUID{Bytes: r.ID, Valid: true}, r.Code, r.User1ID, r.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("insert room %q: %w", r.Code, room.ErrConflict)
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (t *storeTx) SetSecondParticipant(ctx context.Context, roomID uuid.UUID, userID string) error {
	_, err := t.tx.Exec(ctx,
		"UPDATE rooms SET user2_id = $2 WHERE id = $1",
		pgtype.UUID{Bytes: roomID, Valid: true}, userID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("pair room: %w", room.ErrConflict)
		}
		return fmt.Errorf("pair room: %w", err)
	}
	return nil
}

func (t *storeTx) Delete(ctx context.Context, roomID uuid.UUID) error {
	_, err := t.tx.Exec(ctx,
		"DELETE FROM rooms WHERE id = $1", pgtype.UUID{Bytes: roomID, Valid: true})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

// SetUserRoom points the user's room link at roomID, clearing it when nil.
func (t *storeTx) SetUserRoom(ctx context.Context, userID string, roomID *uuid.UUID) error {
	link := pgtype.UUID{}
	if roomID != nil {
		link = pgtype.UUID{Bytes: *roomID, Valid: true}
	}

	_, err := t.tx.Exec(ctx,
		"UPDATE users SET room_id = $2 WHERE id = $1", userID, link)
	if err != nil {
		return fmt.Errorf("set user room: %w", err)
	}
	return nil
}
