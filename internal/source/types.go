package source

type (
	// FileID uniquely identifies a source file within a FileSet. The
	// producer assigns one per included header as well as the primary
	// translation unit file, so a Span's File distinguishes "declared in
	// this header" from "declared in the main file".
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file has no on-disk counterpart (a test
	// fixture or an in-memory translation unit fed by cmd/cppmirc).
	FileVirtual FileFlags = 1 << iota
)

// File captures metadata for one file contributing to a translation unit.
// Content is retained only for diagnostic rendering (source snippets); the
// core never re-lexes it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
