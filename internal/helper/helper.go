package helper

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRunID returns a short random identifier used to correlate one
// sweep's console output with its log entries.
func GenerateRunID() string {
	b := make([]byte, 4)
	rand.Read(b)
	return hex.EncodeToString(b)
}
