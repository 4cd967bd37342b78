package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// randomSuffix returns 6 uppercase hex characters from a fresh UUIDv4.
func randomSuffix() string {
	u := uuid.New()
	return fmt.Sprintf("%X", u[:3])
}

// GenerateMissionCode returns a mission code in the form MSN-XXXXXX.
// Uniqueness is enforced by the storage layer; callers retry on collision.
func GenerateMissionCode() string {
	return "MSN-" + randomSuffix()
}

// GeneratePDVCode returns a point-of-sale code in the form
// PDV-<WILAYA5>-XXXXXX, where WILAYA5 is the wilaya name uppercased,
// stripped of spaces and truncated to 5 characters. Truncation counts
// runes, not bytes: accented wilaya names must not be cut mid-character.
func GeneratePDVCode(wilaya string) string {
	w := strings.ToUpper(strings.ReplaceAll(wilaya, " ", ""))
	if r := []rune(w); len(r) > 5 {
		w = string(r[:5])
	}
	return fmt.Sprintf("PDV-%s-%s", w, randomSuffix())
}
