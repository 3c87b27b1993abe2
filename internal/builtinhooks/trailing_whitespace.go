package builtinhooks

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
)

// trailingWhitespace rewrites files in place to strip trailing whitespace
// from every line, grounded on trailing_whitespace.rs. Permission-denied
// files are skipped rather than failing the whole hook, matching the
// original's behavior. Rewriting any file makes the check fail, naming the
// files it fixed.
type trailingWhitespace struct{}

func (trailingWhitespace) Run(ctx context.Context, files []string, args []string) error {
	var modified []string
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			if os.IsPermission(err) {
				continue
			}
			return err
		}

		var out bytes.Buffer
		changed := false
		scanner := bufio.NewScanner(bytes.NewReader(content))
		scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			trimmed := bytes.TrimRight(line, " \t")
			if len(trimmed) != len(line) {
				changed = true
			}
			out.Write(trimmed)
			out.WriteByte('\n')
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		if !changed {
			continue
		}
		if err := os.WriteFile(f, out.Bytes(), 0o644); err != nil {
			if os.IsPermission(err) {
				continue
			}
			return err
		}
		modified = append(modified, f)
	}
	if len(modified) > 0 {
		return fmt.Errorf("fixed trailing whitespace in %s", strings.Join(modified, ", "))
	}
	return nil
}
