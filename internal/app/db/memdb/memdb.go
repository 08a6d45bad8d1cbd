/*
Package memdb provides an in-memory implementation of the room and user
storage contracts.

It backs development runs without a DATABASE_URL and the engine tests. One
mutex is held for the whole of every transaction, which is strictly stronger
serialization than the row-level locking of the PostgreSQL store, so every
race-resolution guarantee of the engine still holds. State is snapshotted at
transaction start and restored when the transaction function fails, matching
the rollback semantics the engine relies on.
*/
package memdb

import (
	"context"
	"fmt"
	"sync"

	"doodlepair/internal/app/room"
	"doodlepair/internal/app/user"

	"github.com/google/uuid"
)

// Store holds rooms and users in process memory.
type Store struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]room.Room
	users map[string]user.User
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		rooms: make(map[uuid.UUID]room.Room),
		users: make(map[string]user.User),
	}
}

func (s *Store) findByCode(code string) *room.Room {
	for _, rm := range s.rooms {
		if rm.Code == code {
			copied := rm
			return &copied
		}
	}
	return nil
}

func (s *Store) findByParticipant(userID string) *room.Room {
	for _, rm := range s.rooms {
		if rm.Has(userID) {
			copied := rm
			return &copied
		}
	}
	return nil
}

// FindByCode returns the live room with the given code.
func (s *Store) FindByCode(ctx context.Context, code string) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByCode(code), nil
}

// FindByParticipant returns the room the user participates in, if any.
func (s *Store) FindByParticipant(ctx context.Context, userID string) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByParticipant(userID), nil
}

// CodeExists reports whether a live room currently holds the code.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByCode(code) != nil, nil
}

// InTx runs fn while holding the store mutex, restoring the pre-transaction
// state when fn fails.
func (s *Store) InTx(ctx context.Context, fn func(tx room.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomsBefore := make(map[uuid.UUID]room.Room, len(s.rooms))
	for id, rm := range s.rooms {
		roomsBefore[id] = rm
	}
	usersBefore := make(map[string]user.User, len(s.users))
	for id, u := range s.users {
		usersBefore[id] = u
	}

	if err := fn(&memTx{store: s}); err != nil {
		s.rooms = roomsBefore
		s.users = usersBefore
		return err
	}
	return nil
}

// Get returns the user with the given id, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

// Create persists a new user record, rejecting duplicate identities.
func (s *Store) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; ok {
		return fmt.Errorf("create user %q: %w", u.ID, user.ErrConflict)
	}
	s.users[u.ID] = *u
	return nil
}

// memTx mutates the store while the transaction holds the store mutex.
type memTx struct {
	store *Store
}

// FindByCodeForUpdate behaves like FindByCode; the store mutex already
// excludes every other transaction.
func (t *memTx) FindByCodeForUpdate(ctx context.Context, code string) (*room.Room, error) {
	return t.store.findByCode(code), nil
}

func (t *memTx) FindByParticipant(ctx context.Context, userID string) (*room.Room, error) {
	return t.store.findByParticipant(userID), nil
}

// Insert enforces the same uniqueness the database constraints provide:
// one live room per code and per creating participant.
func (t *memTx) Insert(ctx context.Context, r *room.Room) error {
	if t.store.findByCode(r.Code) != nil {
		return fmt.Errorf("insert room %q: %w", r.Code, room.ErrConflict)
	}
	if t.store.findByParticipant(r.User1ID) != nil {
		return fmt.Errorf("insert room for %q: %w", r.User1ID, room.ErrConflict)
	}
	t.store.rooms[r.ID] = *r
	return nil
}

func (t *memTx) SetSecondParticipant(ctx context.Context, roomID uuid.UUID, userID string) error {
	rm, ok := t.store.rooms[roomID]
	if !ok {
		return fmt.Errorf("pair room: room %s not found", roomID)
	}
	if t.store.findByParticipant(userID) != nil {
		return fmt.Errorf("pair room with %q: %w", userID, room.ErrConflict)
	}
	rm.User2ID = userID
	t.store.rooms[roomID] = rm
	return nil
}

func (t *memTx) Delete(ctx context.Context, roomID uuid.UUID) error {
	delete(t.store.rooms, roomID)
	return nil
}

func (t *memTx) SetUserRoom(ctx context.Context, userID string, roomID *uuid.UUID) error {
	u, ok := t.store.users[userID]
	if !ok {
		return nil
	}
	u.RoomID = roomID
	t.store.users[userID] = u
	return nil
}
