/*
Package user defines the participant record and its provisioning logic.

Users are created lazily on first authenticated contact and never deleted;
a user's room link is owned by the pairing engine and cleared on leave.
*/
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrConflict is returned by store implementations when creating a user loses
// the unique-identity race to a concurrent writer.
var ErrConflict = errors.New("user store: identity already exists")

// User is the stable internal record for an externally verified identity.
type User struct {
	// ID is the opaque identifier assigned by the upstream identity provider.
	ID string

	// Name is the display name shown to the partner.
	Name string

	// Email is optional and may stay empty for providers that withhold it.
	Email string

	// RoomID links to the room the user currently participates in, if any.
	RoomID *uuid.UUID
}

// Store is the persistence surface for user records.
// Absent rows are reported as (nil, nil); errors are storage failures.
type Store interface {
	// Get returns the user with the given id.
	Get(ctx context.Context, id string) (*User, error)

	// Create persists a new user record. A concurrent creation of the same
	// identity surfaces as ErrConflict.
	Create(ctx context.Context, u *User) error
}
