package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages the collection of source files for one compilation.
// Files live for the whole compilation; everything downstream refers to
// them by FileID only.
type FileSet struct {
	files []File
	index map[string]FileID // normalized path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

func (fs *FileSet) nextID() FileID {
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	return FileID(lenFiles)
}

// Add registers an on-disk file by path without reading it. The file starts
// in the unloaded state. Registering a path that is already known fails.
func (fs *FileSet) Add(path string) (FileID, error) {
	normalized := normalizePath(path)
	if _, ok := fs.index[normalized]; ok {
		return 0, fmt.Errorf("file %q is already registered", normalized)
	}
	id := fs.nextID()
	fs.files = append(fs.files, File{
		ID:    id,
		Path:  normalized,
		State: FileUnloaded,
	})
	fs.index[normalized] = id
	return id, nil
}

// AddVirtual adds an in-memory file (test, stdin, or generated). Virtual
// files are resident from the start. Adding a name that is already known
// fails, same as Add.
func (fs *FileSet) AddVirtual(name string, content []byte) (FileID, error) {
	normalized := normalizePath(name)
	if _, ok := fs.index[normalized]; ok {
		return 0, fmt.Errorf("file %q is already registered", normalized)
	}
	id := fs.nextID()
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		State:   FileVirtual,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
	})
	fs.index[normalized] = id
	return id, nil
}

// Ensure brings the file into a resident state, reading it from disk if it
// is still unloaded. Loading is one-way: once loaded the content stays.
func (fs *FileSet) Ensure(id FileID) (*File, error) {
	f := fs.Get(id)
	if f == nil {
		return nil, fmt.Errorf("file id %d is not registered", id)
	}
	if f.State != FileUnloaded {
		return f, nil
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	f.Content = content
	f.LineIdx = buildLineIndex(content)
	f.Hash = sha256.Sum256(content)
	f.State = FileLoaded
	return f, nil
}

// Load registers and immediately reads an on-disk file.
func (fs *FileSet) Load(path string) (FileID, error) {
	id, err := fs.Add(path)
	if err != nil {
		return 0, err
	}
	if _, err := fs.Ensure(id); err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the file metadata for the given ID, or nil if out of range.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// GetByPath returns the file registered under path, if any.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fs.index[normalizePath(path)]; ok {
		return &fs.files[id], true
	}
	return nil, false
}

// Len returns the number of registered files.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Resolve converts a span into line and column positions (1-based).
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns the line with the given 1-based number, or an empty
// string when the line does not exist.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end, lenLineIdx, lenContent uint32
	var err error
	lenLineIdx, err = safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err = safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(f.Content[start:end])
}

// FormatPath formats the file path for display.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return filepath.Base(f.Path)

	default:
		return f.Path
	}
}
