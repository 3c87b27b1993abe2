// Package matcher selects which files a hook receives, given its Files and
// Exclude regular expressions.
package matcher

import (
	"fmt"
	"regexp"
	"sort"
)

// FileMatcher decides which files a single hook applies to.
//
// From spec.md's File Matcher: a file is selected when it matches Files (or
// Files is empty, matching everything) and does not match Exclude.
type FileMatcher struct {
	files   *regexp.Regexp
	exclude *regexp.Regexp
}

// New compiles a FileMatcher for the given patterns. Either pattern may be
// empty; an empty Files pattern matches every path.
func New(filesPattern, excludePattern string) (*FileMatcher, error) {
	m := &FileMatcher{}
	if filesPattern != "" {
		re, err := regexp.Compile(filesPattern)
		if err != nil {
			return nil, fmt.Errorf("compiling files pattern %q: %w", filesPattern, err)
		}
		m.files = re
	}
	if excludePattern != "" {
		re, err := regexp.Compile(excludePattern)
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", excludePattern, err)
		}
		m.exclude = re
	}
	return m, nil
}

// Match reports whether path is selected by this matcher.
func (m *FileMatcher) Match(path string) bool {
	if m.files != nil && !m.files.MatchString(path) {
		return false
	}
	if m.exclude != nil && m.exclude.MatchString(path) {
		return false
	}
	return true
}

// Select filters candidates deterministically: the result is sorted and
// deduplicated regardless of the input order, matching the corpus's
// "never trust filesystem/iteration order" discipline.
func (m *FileMatcher) Select(candidates []string) []string {
	set := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if m.Match(c) {
			set[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ExcludeGlobal applies a repository-wide exclude pattern as a third
// filtering stage, run after a hook's own FileMatcher.Select (spec.md §4.2
// step 3): a file this pattern matches never reaches any hook, regardless
// of that hook's own Files/Exclude. An empty pattern is a no-op.
func ExcludeGlobal(selected []string, pattern string) ([]string, error) {
	if pattern == "" {
		return selected, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling global exclude pattern %q: %w", pattern, err)
	}
	out := make([]string, 0, len(selected))
	for _, c := range selected {
		if !re.MatchString(c) {
			out = append(out, c)
		}
	}
	return out, nil
}
