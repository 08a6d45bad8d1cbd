package randx

import (
	"strings"
	"testing"
)

func TestRoomCodeLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := RoomCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != RoomCodeLength {
			t.Errorf("wrong length expected: %d got %d", RoomCodeLength, len(code))
		}
		for _, char := range code {
			if !strings.ContainsRune(CodeAlphabet, char) {
				t.Errorf("code %q contains character %q outside the alphabet", code, char)
			}
		}
	}
}

func TestAlphabetExcludesConfusableGlyphs(t *testing.T) {
	for _, confusable := range "0O1Il" {
		if strings.ContainsRune(CodeAlphabet, confusable) {
			t.Errorf("alphabet must not contain confusable glyph %q", confusable)
		}
	}
	if len(CodeAlphabet) != 32 {
		t.Errorf("alphabet size expected: 32 got %d", len(CodeAlphabet))
	}
}

func TestNormalizeRoomCode(t *testing.T) {
	cases := map[string]string{
		"ab23cd":    "AB23CD",
		" AB23CD ":  "AB23CD",
		"aB23cD":    "AB23CD",
		"":          "",
		"  \t\n":    "",
		"already9Z": "ALREADY9Z",
	}

	for input, want := range cases {
		if got := NormalizeRoomCode(input); got != want {
			t.Errorf("NormalizeRoomCode(%q) expected: %q got %q", input, want, got)
		}
	}
}

func TestIsValidRoomCode(t *testing.T) {
	valid := []string{"AB23CD", "ZZZZZZ", "234567"}
	for _, code := range valid {
		if !IsValidRoomCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	invalid := []string{"", "AB23C", "AB23CDE", "ab23cd", "AB10CD", "ABOICD"}
	for _, code := range invalid {
		if IsValidRoomCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}
