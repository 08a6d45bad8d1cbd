package pairing

import (
	"context"

	"doodlepair/internal/app/room"
	"doodlepair/internal/app/user"
	"doodlepair/internal/pkg/logx"
)

// unknownName is projected when a partner's user record cannot be resolved.
// A stale or missing partner record must not fail the viewer's read.
const unknownName = "Unknown"

// CreateResult is the payload of a create request. Partner fields are only
// set when the request was an idempotent retry against an already paired room.
type CreateResult struct {
	Code    string      `json:"code"`
	Status  room.Status `json:"status"`
	Partner string      `json:"partner,omitempty"`
}

// JoinResult is the payload of a successful join. The partner fields describe
// the room's creator from the joiner's perspective.
type JoinResult struct {
	Status       room.Status `json:"status"`
	RoomCode     string      `json:"roomCode"`
	User1        string      `json:"user1"`
	User2        string      `json:"user2"`
	Partner      string      `json:"partner"`
	PartnerEmail string      `json:"partnerEmail"`
}

// StatusResult is the payload of a status query.
type StatusResult struct {
	Status       room.Status `json:"status"`
	Code         string      `json:"code,omitempty"`
	Partner      string      `json:"partner,omitempty"`
	PartnerEmail string      `json:"partnerEmail,omitempty"`
}

// LeaveResult is the payload of a leave request.
type LeaveResult struct {
	Message string `json:"message"`
}

// projector derives the externally visible view of a room for one viewer,
// resolving participant identities through the user store.
type projector struct {
	users user.Store
}

// displayName resolves a participant's display name, falling back to a
// placeholder when the record is missing or unreadable.
func (p *projector) displayName(ctx context.Context, userID string) string {
	u, err := p.users.Get(ctx, userID)
	if err != nil {
		logx.Warn("Failed to resolve participant name", "user_id", userID, "error", err)
		return unknownName
	}
	if u == nil {
		return unknownName
	}
	return u.Name
}

// email resolves a participant's email, empty when the record is missing.
func (p *projector) email(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}

	u, err := p.users.Get(ctx, userID)
	if err != nil || u == nil {
		return ""
	}
	return u.Email
}

// status projects the room as seen by viewerID. A nil room projects NO_ROOM.
func (p *projector) status(ctx context.Context, rm *room.Room, viewerID string) *StatusResult {
	if rm == nil {
		return &StatusResult{Status: room.StatusNoRoom}
	}

	if !rm.Paired() {
		return &StatusResult{Status: room.StatusWaiting, Code: rm.Code}
	}

	partnerID := rm.PartnerID(viewerID)
	return &StatusResult{
		Status:       room.StatusPaired,
		Code:         rm.Code,
		Partner:      p.displayName(ctx, partnerID),
		PartnerEmail: p.email(ctx, partnerID),
	}
}

// create projects the room as a create response for viewerID.
func (p *projector) create(ctx context.Context, rm *room.Room, viewerID string) *CreateResult {
	res := &CreateResult{Code: rm.Code, Status: room.StatusWaiting}

	if rm.Paired() {
		res.Status = room.StatusPaired
		res.Partner = p.displayName(ctx, rm.PartnerID(viewerID))
	}

	return res
}

// join projects a freshly paired room for its joiner.
func (p *projector) join(ctx context.Context, rm *room.Room) *JoinResult {
	return &JoinResult{
		Status:       room.StatusPaired,
		RoomCode:     rm.Code,
		User1:        p.displayName(ctx, rm.User1ID),
		User2:        p.displayName(ctx, rm.User2ID),
		Partner:      p.displayName(ctx, rm.User1ID),
		PartnerEmail: p.email(ctx, rm.User1ID),
	}
}
