package jwt

import "github.com/golang-jwt/jwt"

// Identity is the verified participant identity extracted from a bearer token.
// The token itself is issued and signed upstream; by the time an Identity
// reaches the pairing core, verification has already succeeded.
type Identity struct {
	// StandardClaims embeds the JWT standard fields (Sub, Exp, Iat, Iss).
	// Subject carries the stable opaque user identifier.
	jwt.StandardClaims

	// Name is an optional display-name hint from the identity provider.
	Name string `json:"name,omitempty"`

	// Email is an optional email hint from the identity provider.
	Email string `json:"email,omitempty"`
}

// UserID returns the stable opaque identifier of the participant.
func (i *Identity) UserID() string {
	return i.Subject
}
