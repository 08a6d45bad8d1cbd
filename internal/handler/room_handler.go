/*
Package handler provides HTTP handler functions for the room pairing operations.
*/
package handler

import (
	"net/http"

	"doodlepair/internal/pkg/auth/jwt"
	"doodlepair/internal/pkg/errs"
	"doodlepair/internal/pkg/randx"
	"doodlepair/internal/pkg/req"
	"doodlepair/internal/pkg/resp"
)

// HandleCreateRoom puts the caller into a fresh waiting room, provisioning
// the user record first. Retries are idempotent: a caller that already has a
// room gets that room back.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetIdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if _, cerr := deps.Provisioner.Ensure(r.Context(), identity.UserID(), identity.Name, identity.Email); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		result, cerr := deps.Engine.Create(r.Context(), identity.UserID())
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		resp.RespondOK(w, r, result)
	}
}

type JoinRoomInput struct {
	Code string `json:"code"`
}

// HandleJoinRoom pairs the caller into the room with the submitted code.
// Codes are accepted case-insensitively; a blank code never reaches the engine.
func HandleJoinRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetIdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input JoinRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		code := randx.NormalizeRoomCode(input.Code)
		if code == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrCodeRequired))
			return
		}

		if _, cerr := deps.Provisioner.Ensure(r.Context(), identity.UserID(), identity.Name, identity.Email); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		result, cerr := deps.Engine.Join(r.Context(), identity.UserID(), code)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		resp.RespondOK(w, r, result)
	}
}

// HandleRoomStatus reports the caller's pairing state. It is a pure read and
// deliberately skips provisioning: a status check alone must not create a user.
func HandleRoomStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetIdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		result, cerr := deps.Engine.Status(r.Context(), identity.UserID())
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		resp.RespondOK(w, r, result)
	}
}

// HandleLeaveRoom tears down the caller's room. Leaving without a room is a
// successful no-op.
func HandleLeaveRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetIdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		result, cerr := deps.Engine.Leave(r.Context(), identity.UserID())
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		resp.RespondOK(w, r, result)
	}
}
