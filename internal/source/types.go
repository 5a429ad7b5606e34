package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	// FileHadBOM is set when the raw bytes started with a byte order mark.
	FileHadBOM
	// FileTranscoded marks files decoded from UTF-16; such files are never rewritten.
	FileTranscoded
	// FileHasCRLF marks files that use \r\n line terminators somewhere.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
//
// Content is kept byte-for-byte (BOM and \r\n included) so that spans
// reported by rules can be applied back to the file on disk.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // позиции '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}

// Text returns the content covered by span, clamped to the file bounds.
func (f *File) Text(span Span) string {
	n := uint32(len(f.Content)) // #nosec G115 -- длина проверена в Add
	start, end := min(span.Start, n), min(span.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// Len returns the content length as uint32.
func (f *File) Len() uint32 {
	return uint32(len(f.Content)) // #nosec G115 -- длина проверена в Add
}

// Span returns the span covering the whole file.
func (f *File) Span() Span {
	return Span{File: f.ID, Start: 0, End: f.Len()}
}
