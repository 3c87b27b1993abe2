// Package fingerprint computes the content-addressed identity of an
// EnvSpec, used to key provisioned toolchains in internal/cachestore.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// Digest is a hex-encoded sha256 sum, safe to use as a directory name.
type Digest string

func (d Digest) String() string { return string(d) }

// ShardPrefix returns the first two characters, used as a directory prefix
// to avoid overly large flat directories (mirrors the teacher's cache
// sharding in internal/core/cache.go).
func (d Digest) ShardPrefix() string {
	s := string(d)
	if len(s) < 2 {
		return s
	}
	return s[:2]
}

// Compute returns the deterministic Digest of an EnvSpec. Any change to
// Language, Tool, Version, Dependencies, or InterpreterVersion MUST change
// the digest; nothing else may influence it.
//
// Fields are length-prefixed before hashing, following the teacher's
// TaskHasher.ComputeHash encoding in internal/core/hasher.go, so that no
// pair of distinct field sequences can collide by concatenation ambiguity.
func Compute(spec hook.EnvSpec) Digest {
	h := sha256.New()

	writeField := func(s string) {
		b := []byte(s)
		length := uint64(len(b))
		var lb [8]byte
		for i := 0; i < 8; i++ {
			lb[7-i] = byte(length >> (8 * i))
		}
		h.Write(lb[:])
		h.Write(b)
	}

	writeField(string(spec.Language))
	writeField(spec.Tool)
	writeField(spec.Version)
	writeField(spec.InterpreterVersion)

	deps := make([]string, len(spec.Dependencies))
	copy(deps, spec.Dependencies)
	sort.Strings(deps)

	var count [8]byte
	n := uint64(len(deps))
	for i := 0; i < 8; i++ {
		count[7-i] = byte(n >> (8 * i))
	}
	h.Write(count[:])
	for _, d := range deps {
		writeField(d)
	}

	return Digest(hex.EncodeToString(h.Sum(nil)))
}
