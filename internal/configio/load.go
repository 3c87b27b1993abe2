package configio

import (
	"fmt"
	"path/filepath"

	"github.com/rustyhook/rustyhook/internal/convert"
	"github.com/rustyhook/rustyhook/internal/hook"
)

// LegacyConfigFileName is the well-known legacy dialect filename, matching
// blairham-go-pre-commit's ConfigFileName constant.
const LegacyConfigFileName = ".pre-commit-config.yaml"

// NativeConfigFileName is the default native-dialect filename.
const NativeConfigFileName = "rustyhook.yaml"

// Load auto-detects the config dialect at path by filename and loads it,
// converting a legacy file to the native Config shape via internal/convert.
// Any fallback decisions made during legacy conversion are reported through
// warn (pass a no-op to ignore them).
func Load(path string, warn func(convert.Warning)) (*hook.Config, error) {
	base := filepath.Base(path)
	if base == LegacyConfigFileName {
		lf, err := LoadLegacy(path)
		if err != nil {
			return nil, err
		}
		cfg, err := convert.ToNativeWithWarner(lf, warn)
		if err != nil {
			return nil, fmt.Errorf("converting legacy config: %w", err)
		}
		for i := range cfg.Hooks {
			if len(cfg.Hooks[i].Stages) == 0 && len(cfg.DefaultStages) > 0 {
				cfg.Hooks[i].Stages = cfg.DefaultStages
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadNative(path)
}
