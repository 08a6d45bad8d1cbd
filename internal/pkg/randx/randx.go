/*
Package randx generates room codes using a cryptographically secure random source.

Codes are short, human-typeable identifiers drawn from a fixed alphabet that
excludes visually confusable glyphs, so a code read off one screen can be
typed into another without ambiguity.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// CodeAlphabet is the 32-symbol character set for room codes.
	// 0/O and 1/I are excluded because they are easily confused.
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// codeAlphabetLen is the number of symbols in CodeAlphabet.
	codeAlphabetLen = int64(len(CodeAlphabet))

	// RoomCodeLength is the fixed length of a room code.
	RoomCodeLength = 6
)

// RoomCode generates a room code of RoomCodeLength symbols using crypto/rand.
// Uniqueness against live rooms is the caller's responsibility.
func RoomCode() (string, error) {
	result := make([]byte, RoomCodeLength)

	for i := 0; i < RoomCodeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(codeAlphabetLen))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for room code: %v", err)
		}

		result[i] = CodeAlphabet[num.Int64()]
	}

	return string(result), nil
}

// NormalizeRoomCode upper-cases and trims a client-supplied code so that
// lookups are case-insensitive.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidRoomCode checks that the given string is a normalized room code:
// exactly RoomCodeLength symbols, all drawn from CodeAlphabet.
func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(CodeAlphabet, char) {
			return false
		}
	}

	return true
}
