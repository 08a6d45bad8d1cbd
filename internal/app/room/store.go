package room

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrConflict is returned by store implementations when an insert or update
// loses a uniqueness race (duplicate code, or a participant already bound to
// another room). The pairing engine branches on it to resolve concurrent
// creates idempotently.
var ErrConflict = errors.New("room store: uniqueness conflict")

// Store is the read surface and transaction entry point for rooms.
// Absent rows are reported as (nil, nil); errors are storage failures.
type Store interface {
	// FindByCode returns the live room with the given code. Plain read, no lock.
	FindByCode(ctx context.Context, code string) (*Room, error)

	// FindByParticipant returns the room in which the user is a participant.
	FindByParticipant(ctx context.Context, userID string) (*Room, error)

	// CodeExists reports whether a live room currently holds the code.
	CodeExists(ctx context.Context, code string) (bool, error)

	// InTx runs fn inside one storage transaction. The transaction commits
	// when fn returns nil and rolls back otherwise, releasing any row locks
	// either way.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the mutation surface available inside a transaction. It also mutates
// the user-side room link so that both directions of the user-room
// association change atomically.
type Tx interface {
	// FindByCodeForUpdate returns the room with the given code while holding
	// an exclusive lock on its row until the transaction ends. Concurrent
	// lockers of the same code block; unrelated codes proceed in parallel.
	FindByCodeForUpdate(ctx context.Context, code string) (*Room, error)

	// FindByParticipant returns the room in which the user is a participant.
	FindByParticipant(ctx context.Context, userID string) (*Room, error)

	// Insert persists a new waiting room. Code and participant uniqueness are
	// enforced by the storage layer; violations surface as ErrConflict.
	Insert(ctx context.Context, r *Room) error

	// SetSecondParticipant records the joiner, transitioning the room from
	// waiting to paired. Violations of participant uniqueness surface as
	// ErrConflict.
	SetSecondParticipant(ctx context.Context, roomID uuid.UUID, userID string) error

	// Delete removes the room row.
	Delete(ctx context.Context, roomID uuid.UUID) error

	// SetUserRoom points the user's room link at roomID, or clears it when
	// roomID is nil. Unknown users are a no-op.
	SetUserRoom(ctx context.Context, userID string, roomID *uuid.UUID) error
}
