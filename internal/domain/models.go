package domain

import (
	"path/filepath"
	"strings"
)

// Kind identifies the archive family of a file. It is decided once at
// dispatch time from the file extension, never from content.
type Kind int

const (
	// KindUnknown means the extension is not a recognized archive type
	KindUnknown Kind = iota

	// KindTar covers .tar, .tgz, .tbz and .tb2 files
	KindTar

	// KindGzip covers single-member .gz files
	KindGzip
)

// String returns a human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindTar:
		return "tar"
	case KindGzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// tarExtensions are the tar-family extensions, all readable through one
// tar interface with the compression layer chosen by extension.
var tarExtensions = map[string]bool{
	".tar": true,
	".tgz": true,
	".tbz": true,
	".tb2": true,
}

// KindOf classifies a path by its lowercased final extension
func KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case tarExtensions[ext]:
		return KindTar
	case ext == ".gz":
		return KindGzip
	default:
		return KindUnknown
	}
}

// Result describes what a single extraction produced. Tar extraction always
// yields a directory; gzip extraction yields a single output file unless a
// containing directory was requested.
type Result struct {
	Path  string
	IsDir bool
}

// WalkStats counts the outcomes of one tree walk, including everything
// reached through nested recursion.
type WalkStats struct {
	Extracted int
	Failed    int
	Skipped   int
}

// Add merges the counters from a nested walk
func (s *WalkStats) Add(other WalkStats) {
	s.Extracted += other.Extracted
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}
