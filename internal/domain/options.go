package domain

// Options controls the top-level dispatch of a single archive file.
// Delete, CreateDir and GzCreateDir only apply to the nested extractions
// discovered during the recursive walk; the top-level file itself is always
// extracted into a fresh directory and never deleted.
type Options struct {
	Dest        string
	Recursive   bool
	Delete      bool
	CreateDir   bool
	GzCreateDir bool
	MaxDepth    int
}

// TarOptions controls a single tar-family extraction
type TarOptions struct {
	Dest      string
	CreateDir bool
	Delete    bool
}

// GzipOptions controls a single gzip extraction
type GzipOptions struct {
	Dest      string
	CreateDir bool
	Delete    bool
}

// WalkOptions controls a recursive tree walk
type WalkOptions struct {
	Delete      bool
	CreateDir   bool
	GzCreateDir bool
	MaxDepth    int
}
