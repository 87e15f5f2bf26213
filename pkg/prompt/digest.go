package prompt

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestString returns the sha256 digest for s.
func DigestString(s string) string {
	return computeDigest([]byte(s))
}

func computeDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
