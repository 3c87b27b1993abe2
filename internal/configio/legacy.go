package configio

import (
	"github.com/rustyhook/rustyhook/internal/convert"
)

// LegacyHookDef mirrors a single hook entry under a legacy repo block.
// Defined in internal/convert to avoid an import cycle between configio and
// convert; aliased here since this is the dialect-detection package callers
// historically reached these types through.
type LegacyHookDef = convert.LegacyHookDef

// LegacyRepo mirrors one `- repo: ...` block.
type LegacyRepo = convert.LegacyRepo

// LegacyFile mirrors the top-level .pre-commit-config.yaml document.
type LegacyFile = convert.LegacyFile

// LoadLegacy parses a .pre-commit-config.yaml at path.
func LoadLegacy(path string) (*LegacyFile, error) {
	return convert.LoadLegacy(path)
}
