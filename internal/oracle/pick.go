package oracle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// RoundKey is the HMAC message for a round number.
func RoundKey(round int) string {
	return "round-" + strconv.Itoa(round)
}

// Pick returns a deterministic index for a round using HMAC(seed, round-N) % n.
func Pick(seed string, round, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(seed))
	h.Write([]byte(RoundKey(round)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
