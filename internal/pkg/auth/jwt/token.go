package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// IdentityExpiration defines the validity window for identity tokens.
	IdentityExpiration = 24 * time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "DoodlePair"
)

// GenerateToken creates and signs a JWT for the given identity.
// Production tokens come from the upstream identity provider; this is used
// by tooling and tests that need a locally minted identity.
func GenerateToken(identity *Identity, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()

	identity.StandardClaims.ExpiresAt = now.Add(duration).Unix()
	identity.StandardClaims.IssuedAt = now.Unix()
	if identity.StandardClaims.Issuer == "" {
		identity.StandardClaims.Issuer = TokenIssuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, identity)

	return token.SignedString([]byte(secretKey))
}

// ParseToken parses and validates a JWT string using the provided secretKey.
func ParseToken(tokenString string, secretKey string) (*Identity, error) {
	claims := &Identity{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	if claims.Subject == "" {
		return nil, errors.New("token carries no subject")
	}

	return claims, nil
}
