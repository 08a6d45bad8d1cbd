/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
// Entries without an explicit Status default to 400 Bad Request, matching how
// pairing failures are reported to clients.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters"},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format"},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format"},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data"},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later", Status: http.StatusTooManyRequests},

	// 2xxx: Room and Pairing Business Logic Errors
	ErrCodeRequired:  {Code: ErrCodeRequired, Message: "Room code is required"},
	ErrInvalidCode:   {Code: ErrInvalidCode, Message: "Invalid room code"},
	ErrRoomFull:      {Code: ErrRoomFull, Message: "Room is already full"},
	ErrSelfJoin:      {Code: ErrSelfJoin, Message: "Cannot join your own room"},
	ErrCodeExpired:   {Code: ErrCodeExpired, Message: "Room code expired"},
	ErrAlreadyInRoom: {Code: ErrAlreadyInRoom, Message: "You are already in a room"},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Please sign in to continue", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again", Status: http.StatusInternalServerError},
	ErrProvisioningFailed: {Code: ErrProvisioningFailed, Message: "Failed to create or fetch user", Status: http.StatusInternalServerError},
}
