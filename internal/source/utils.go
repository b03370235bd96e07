package source

import (
	"fmt"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

// buildLineIndex records the byte offset of every '\n' in content.
// '\r' is ordinary whitespace for positional accounting, never a line break.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			idx = append(idx, off)
		}
	}
	return idx
}

// toLineCol converts a byte offset into a 1-based line/column pair using a
// precomputed newline index.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of '\n' strictly before offset
	line := sort.Search(len(lineIdx), func(i int) bool {
		return lineIdx[i] >= off
	})
	lineStart := uint32(0)
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	lineU32, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{
		Line: lineU32 + 1,
		Col:  off - lineStart + 1,
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}
