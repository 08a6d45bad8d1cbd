/*
Package room defines the pairing room entity and its storage contracts.

A room holds up to two participants and is addressed by a short room code.
Pairing state is derived from participant presence: a room with only its
creator is waiting, a room with a second participant is paired. There is no
separate locked flag, so a "paired room without a second participant" cannot
be represented.
*/
package room

import (
	"time"

	"github.com/google/uuid"
)

// TTL is how long a waiting room stays joinable after creation.
// Expiry is checked lazily at join time; expired rooms are not swept.
const TTL = 10 * time.Minute

// Status is a participant's externally visible pairing state.
type Status string

const (
	// StatusNoRoom means the user belongs to no room.
	StatusNoRoom Status = "NO_ROOM"

	// StatusWaiting means the user created a room and is waiting for a partner.
	StatusWaiting Status = "WAITING"

	// StatusPaired means the user's room has both participants.
	StatusPaired Status = "PAIRED"
)

// Room is the pairing session entity.
type Room struct {
	// ID is the surrogate identifier referenced by users' room links.
	ID uuid.UUID

	// Code is the 6-character room code, unique among live rooms.
	Code string

	// User1ID is the creator. Always set.
	User1ID string

	// User2ID is the joiner. Empty while the room is waiting.
	User2ID string

	// CreatedAt anchors the join deadline.
	CreatedAt time.Time
}

// Paired reports whether the room has both participants.
func (r *Room) Paired() bool {
	return r.User2ID != ""
}

// Expired reports whether the room passed its join deadline at the given time.
func (r *Room) Expired(now time.Time) bool {
	return now.After(r.CreatedAt.Add(TTL))
}

// PartnerID returns the id of the participant that is not the viewer.
// For a waiting room viewed by its creator, the partner is empty.
func (r *Room) PartnerID(viewerID string) string {
	if r.User1ID == viewerID {
		return r.User2ID
	}
	return r.User1ID
}

// Has reports whether the given user is a participant of the room.
func (r *Room) Has(userID string) bool {
	return r.User1ID == userID || r.User2ID == userID
}
