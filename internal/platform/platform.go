// Package platform probes the host OS/architecture and derives the
// platform-specific constants the Execution Engine and Provisioner need:
// executable suffixes, archive formats, and the argv length ceiling used
// for chunking (spec.md §4.4 step 3, §5).
package platform

import (
	"runtime"
)

// fallbackArgMax is the argv byte limit ArgMax reports on every platform;
// the kernel limit is not queried. It is deliberately conservative.
const fallbackArgMax = 128 * 1024

// Info describes the current host.
type Info struct {
	OS   string
	Arch string
}

// Current returns the running host's platform Info.
func Current() Info {
	return Info{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// ExeSuffix returns the suffix appended to executable names on this OS.
func (i Info) ExeSuffix() string {
	if i.OS == "windows" {
		return ".exe"
	}
	return ""
}

// ArchiveFormat identifies which archive format a toolchain download uses.
type ArchiveFormat string

const (
	ArchiveZip    ArchiveFormat = "zip"
	ArchiveTarGz  ArchiveFormat = "tar.gz"
	ArchiveTarXz  ArchiveFormat = "tar.xz"
)

// PreferredArchive returns the archive format toolchain distributions
// typically publish for this OS.
func (i Info) PreferredArchive() ArchiveFormat {
	if i.OS == "windows" {
		return ArchiveZip
	}
	return ArchiveTarGz
}

// ArgMax returns the maximum bytes of argv this platform can accept for a
// single exec, used by internal/dispatch to chunk large file lists.
//
// The true kernel ARG_MAX is not exposed through any portable Go API in the
// example corpus's dependency set, so this returns the same conservative
// constant on every platform rather than fabricating a syscall wrapper for
// it; chunking stays correct (just occasionally more conservative than the
// kernel would strictly require).
func ArgMax() int {
	return fallbackArgMax
}

// RecommendedConcurrency returns the default hook/provision concurrency
// when a Config leaves Concurrency at zero: the number of logical CPUs,
// clamped to a sane range.
func RecommendedConcurrency() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}
