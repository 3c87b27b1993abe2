package builtinhooks

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// checkAddedLargeFiles rejects files larger than a configurable threshold,
// grounded on check_added_large_files.rs. The threshold is read from a
// "--maxkb=N" entry in args, defaulting to 500 KB, mirroring the Rust
// HookFactory's argument parsing.
type checkAddedLargeFiles struct{}

const defaultMaxSizeKB = 500

func (checkAddedLargeFiles) Run(ctx context.Context, files []string, args []string) error {
	maxKB := defaultMaxSizeKB
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "--maxkb="); ok {
			if n, err := strconv.Atoi(v); err == nil {
				maxKB = n
			}
		}
	}

	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return err
		}
		sizeKB := int(info.Size() / 1024)
		if sizeKB > maxKB {
			return fmt.Errorf("file %s is too large (%d KB > %d KB)", f, sizeKB, maxKB)
		}
	}
	return nil
}
