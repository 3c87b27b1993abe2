package trace

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeTraceHash returns the sha256 hex digest of canonical trace bytes.
func ComputeTraceHash(canonicalJSON []byte) string {
	sum := sha256.Sum256(canonicalJSON)
	return hex.EncodeToString(sum[:])
}
