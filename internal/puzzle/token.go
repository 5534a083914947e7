package puzzle

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
)

// MaxAttempts is the number of guesses a player gets per puzzle.
const MaxAttempts = 6

// Codec issues and verifies progress tokens of the form
// "<count>.<base64url(HMAC-SHA256(seed, "<puzzleId>:<count>"))>".
// The signature binds the count to one puzzle day.
type Codec struct {
	seed []byte
}

// NewCodec returns a Codec signing with seed.
func NewCodec(seed []byte) *Codec {
	return &Codec{seed: bytes.Clone(seed)}
}

func (c *Codec) sign(puzzleID string, count int) string {
	mac := hmac.New(sha256.New, c.seed)
	mac.Write([]byte(puzzleID + ":" + strconv.Itoa(count)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Issue returns a freshly signed token for count attempts on puzzleID.
// Counts outside [0, MaxAttempts] are clamped.
func (c *Codec) Issue(puzzleID string, count int) string {
	count = min(max(count, 0), MaxAttempts)
	return strconv.Itoa(count) + "." + c.sign(puzzleID, count)
}

// Verify returns the attempt count carried by token for puzzleID. Absent,
// malformed, out-of-range or badly signed tokens all yield 0.
func (c *Codec) Verify(puzzleID, token string) int {
	if token == "" {
		return 0
	}
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return 0
	}
	count, ok := parseCount(parts[0])
	if !ok {
		return 0
	}
	if !hmac.Equal([]byte(c.sign(puzzleID, count)), []byte(parts[1])) {
		return 0
	}
	return count
}

// parseCount accepts only the canonical form Issue emits: one digit 0-6.
func parseCount(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '0'+MaxAttempts {
		return 0, false
	}
	return int(s[0] - '0'), true
}
