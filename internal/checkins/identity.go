package checkins

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// ToStoredUserID maps a raw user identifier (an email, or any opaque string)
// to a stable UUID-shaped storage key. A canonical UUID passes through
// unchanged; anything else is hashed so raw identifying strings never become
// primary keys. Deterministic: same input, same output.
func ToStoredUserID(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) == 36 && uuid.Validate(raw) == nil {
		return raw
	}
	sum := sha256.Sum256([]byte(raw))
	h := hex.EncodeToString(sum[:16])
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}
