/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room and Pairing Business Logic Errors
const (
	// ErrCodeRequired indicates that a join request arrived with an empty room code.
	ErrCodeRequired = 2101

	// ErrInvalidCode indicates that no active room exists for the supplied code.
	ErrInvalidCode = 2102

	// ErrRoomFull indicates that the room already has two participants.
	ErrRoomFull = 2103

	// ErrSelfJoin indicates that a user attempted to join the room they created.
	ErrSelfJoin = 2104

	// ErrCodeExpired indicates that the room passed its join deadline while still waiting.
	ErrCodeExpired = 2105

	// ErrAlreadyInRoom indicates that the user already belongs to a room and cannot join another.
	ErrAlreadyInRoom = 2106
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates that the request carried no valid verified identity.
	ErrUnauthorized = 3001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrProvisioningFailed indicates that a user record could neither be created nor re-read.
	ErrProvisioningFailed = 5001
)
