// Package report turns an engine run into human-facing and durable output:
// a colored terminal Reporter (reporter.go) and an atomic on-disk RunReport
// writer (persist.go), adapted from the teacher's normalization and
// durable-write disciplines.
package report

import "regexp"

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes terminal color/cursor escape sequences from captured
// hook output before it is persisted, mirroring the teacher's
// internal/core/normalizer.go regex-table approach to stripping
// nondeterministic or terminal-only noise from recorded output.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}
