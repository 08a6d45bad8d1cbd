/*
Package pairing implements the room pairing state machine.

A user moves through three states: NO_ROOM, WAITING (created a room, alone in
it) and PAIRED (the room has both participants). The engine owns every
transition and all race resolution: joins to one code are serialized by an
exclusive row lock, concurrent creates for one identity collapse through the
storage participant constraint, and expiry is checked lazily at join time.
*/
package pairing

import (
	"context"
	"errors"
	"time"

	"doodlepair/internal/app/room"
	"doodlepair/internal/app/user"
	"doodlepair/internal/pkg/errs"
	"doodlepair/internal/pkg/logx"
	"doodlepair/internal/pkg/randx"

	"github.com/google/uuid"
)

// createAttempts bounds how often a create retries after losing a
// storage-level uniqueness race before giving up.
const createAttempts = 3

// codeWarnEvery is the number of code-generation collisions after which a
// warning is logged. The 32^6 code space makes reaching it a signal that
// something is wrong, not ordinary contention.
const codeWarnEvery = 5

// Engine is the pairing state machine over a room store and a user store.
type Engine struct {
	rooms   room.Store
	project projector
}

// NewEngine returns an Engine backed by the given stores. The user store is
// only read, for projecting partner identities.
func NewEngine(rooms room.Store, users user.Store) *Engine {
	return &Engine{
		rooms:   rooms,
		project: projector{users: users},
	}
}

// Create puts the user into a fresh waiting room and returns its code.
// When the user already has a room, that room's current projection is
// returned instead, which makes Create safe to retry.
func (e *Engine) Create(ctx context.Context, userID string) (*CreateResult, *errs.CustomError) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		existing, err := e.rooms.FindByParticipant(ctx, userID)
		if err != nil {
			logx.Error(err, "Failed to look up existing room", "user_id", userID)
			return nil, errs.NewError(errs.ErrUnknown)
		}
		if existing != nil {
			return e.project.create(ctx, existing, userID), nil
		}

		code, cerr := e.generateCode(ctx)
		if cerr != nil {
			return nil, cerr
		}

		newRoom := &room.Room{
			ID:        uuid.New(),
			Code:      code,
			User1ID:   userID,
			CreatedAt: time.Now(),
		}

		err = e.rooms.InTx(ctx, func(tx room.Tx) error {
			if err := tx.Insert(ctx, newRoom); err != nil {
				return err
			}
			return tx.SetUserRoom(ctx, userID, &newRoom.ID)
		})

		if err == nil {
			return &CreateResult{Code: code, Status: room.StatusWaiting}, nil
		}

		// A conflict means either a concurrent create for this user won (the
		// next iteration finds and returns that room) or the generated code
		// collided with a room inserted in between (the next iteration draws
		// a new one).
		if errors.Is(err, room.ErrConflict) {
			logx.Warn("Create lost a uniqueness race, retrying", "user_id", userID, "attempt", attempt+1)
			continue
		}

		logx.Error(err, "Failed to create room", "user_id", userID)
		return nil, errs.NewError(errs.ErrUnknown)
	}

	logx.Error(errors.New("create retries exhausted"), "Giving up on room creation", "user_id", userID)
	return nil, errs.NewError(errs.ErrUnknown)
}

// generateCode draws room codes until one is unused among live rooms.
// Collisions are nearly impossible in a 32^6 space, so repeated ones are
// logged rather than silently absorbed. The storage unique constraint on the
// code column backstops any check-then-insert gap.
func (e *Engine) generateCode(ctx context.Context) (string, *errs.CustomError) {
	for attempt := 1; ; attempt++ {
		code, err := randx.RoomCode()
		if err != nil {
			logx.Error(err, "Random source failed while generating room code")
			return "", errs.NewError(errs.ErrUnknown)
		}

		taken, err := e.rooms.CodeExists(ctx, code)
		if err != nil {
			logx.Error(err, "Failed to check room code uniqueness")
			return "", errs.NewError(errs.ErrUnknown)
		}
		if !taken {
			return code, nil
		}

		if attempt%codeWarnEvery == 0 {
			logx.Warn("Room code generation keeps colliding", "attempts", attempt)
		}
	}
}

// Join adds the user to the waiting room with the given code, pairing it.
// The code must already be normalized to uppercase. All joins to one code are
// serialized by an exclusive lock on the room row, so of two racing joiners
// exactly one pairs and the other observes the room as full.
func (e *Engine) Join(ctx context.Context, userID, code string) (*JoinResult, *errs.CustomError) {
	var cerr *errs.CustomError
	var joined *room.Room

	err := e.rooms.InTx(ctx, func(tx room.Tx) error {
		mine, err := tx.FindByParticipant(ctx, userID)
		if err != nil {
			return err
		}
		if mine != nil {
			if mine.Code == code {
				cerr = errs.NewError(errs.ErrSelfJoin)
			} else {
				cerr = errs.NewError(errs.ErrAlreadyInRoom)
			}
			return cerr
		}

		rm, err := tx.FindByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if rm == nil {
			cerr = errs.NewError(errs.ErrInvalidCode)
			return cerr
		}

		// Under the lock the room state is stable: the loser of a join race
		// observes the winner's committed second participant here.
		if rm.Paired() {
			cerr = errs.NewError(errs.ErrRoomFull)
			return cerr
		}

		if rm.User1ID == userID {
			cerr = errs.NewError(errs.ErrSelfJoin)
			return cerr
		}

		if rm.Expired(time.Now()) {
			cerr = errs.NewError(errs.ErrCodeExpired)
			return cerr
		}

		if err := tx.SetSecondParticipant(ctx, rm.ID, userID); err != nil {
			return err
		}
		if err := tx.SetUserRoom(ctx, userID, &rm.ID); err != nil {
			return err
		}

		rm.User2ID = userID
		joined = rm
		return nil
	})

	if cerr != nil {
		return nil, cerr
	}
	if err != nil {
		if errors.Is(err, room.ErrConflict) {
			// The joiner got bound to another room concurrently.
			return nil, errs.NewError(errs.ErrAlreadyInRoom)
		}
		logx.Error(err, "Failed to join room", "user_id", userID, "code", code)
		return nil, errs.NewError(errs.ErrUnknown)
	}

	logx.Info("Room paired", "code", code)
	return e.project.join(ctx, joined), nil
}

// Status reports the user's pairing state. It is a pure read: no locks, no
// mutation, and in particular no user provisioning.
func (e *Engine) Status(ctx context.Context, userID string) (*StatusResult, *errs.CustomError) {
	rm, err := e.rooms.FindByParticipant(ctx, userID)
	if err != nil {
		logx.Error(err, "Failed to look up room for status", "user_id", userID)
		return nil, errs.NewError(errs.ErrUnknown)
	}

	return e.project.status(ctx, rm, userID), nil
}

// Leave tears down the user's room, clearing the room link of every present
// participant before deleting the row. The requester's link is cleared even
// when no room was found, so Leave is an idempotent no-op the second time.
func (e *Engine) Leave(ctx context.Context, userID string) (*LeaveResult, *errs.CustomError) {
	err := e.rooms.InTx(ctx, func(tx room.Tx) error {
		rm, err := tx.FindByParticipant(ctx, userID)
		if err != nil {
			return err
		}

		if rm != nil {
			if err := tx.SetUserRoom(ctx, rm.User1ID, nil); err != nil {
				return err
			}
			if rm.User2ID != "" {
				if err := tx.SetUserRoom(ctx, rm.User2ID, nil); err != nil {
					return err
				}
			}
			if err := tx.Delete(ctx, rm.ID); err != nil {
				return err
			}
		}

		// Defensive cleanup for a dangling link without a backing room.
		return tx.SetUserRoom(ctx, userID, nil)
	})

	if err != nil {
		logx.Error(err, "Failed to leave room", "user_id", userID)
		return nil, errs.NewError(errs.ErrUnknown)
	}

	return &LeaveResult{Message: "Left room successfully"}, nil
}
