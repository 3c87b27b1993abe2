package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyhook/rustyhook/internal/hook"
)

func TestCompute_Deterministic(t *testing.T) {
	spec := hook.EnvSpec{Language: hook.LanguagePython, Tool: "black", Version: "stable", Dependencies: []string{"b", "a"}}

	d1 := Compute(spec)
	d2 := Compute(spec)

	assert.Equal(t, d1, d2)
	assert.Len(t, string(d1), 64)
}

func TestCompute_DependencyOrderDoesNotAffectDigest(t *testing.T) {
	a := hook.EnvSpec{Language: hook.LanguagePython, Tool: "ruff", Dependencies: []string{"x", "y"}}
	b := hook.EnvSpec{Language: hook.LanguagePython, Tool: "ruff", Dependencies: []string{"y", "x"}}

	assert.Equal(t, Compute(a), Compute(b))
}

func TestCompute_DistinctInputsProduceDistinctDigests(t *testing.T) {
	base := hook.EnvSpec{Language: hook.LanguagePython, Tool: "black", Version: "stable"}

	variants := []hook.EnvSpec{
		{Language: hook.LanguageNode, Tool: "black", Version: "stable"},
		{Language: hook.LanguagePython, Tool: "ruff", Version: "stable"},
		{Language: hook.LanguagePython, Tool: "black", Version: "24.0"},
		{Language: hook.LanguagePython, Tool: "black", Version: "stable", Dependencies: []string{"plugin"}},
		{Language: hook.LanguagePython, Tool: "black", Version: "stable", InterpreterVersion: "3.12"},
	}

	baseDigest := Compute(base)
	for _, v := range variants {
		assert.NotEqual(t, baseDigest, Compute(v), "expected distinct digest for %+v", v)
	}
}

func TestCompute_NoConcatenationCollision(t *testing.T) {
	a := hook.EnvSpec{Tool: "ab", Version: "c"}
	b := hook.EnvSpec{Tool: "a", Version: "bc"}

	assert.NotEqual(t, Compute(a), Compute(b))
}

func TestDigest_ShardPrefix(t *testing.T) {
	assert.Equal(t, "ab", Digest("abcdef").ShardPrefix())
	assert.Equal(t, "a", Digest("a").ShardPrefix())
	assert.Equal(t, "", Digest("").ShardPrefix())
}

func TestDigest_String(t *testing.T) {
	assert.Equal(t, "deadbeef", Digest("deadbeef").String())
}
