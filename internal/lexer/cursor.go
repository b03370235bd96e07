package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/linkpy/neolang/internal/source"
)

// Cursor представляет собой позицию в файле.
// Отслеживает (offset, line, column); переводом строки считается только '\n',
// '\r' — обычный пробельный символ.
type Cursor struct {
	File *source.File
	Off  uint32
	Line uint32 // 0-based
	Col  uint32 // 0-based
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f}
}

func (c *Cursor) limit() uint32 {
	lenFileContent, err := safecast.Conv[uint32](len(c.File.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenFileContent
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek читает байт со смещением n от текущей позиции, если есть.
func (c *Cursor) Peek(n uint32) (byte, bool) {
	if c.Off+n >= c.limit() {
		return 0, false
	}
	return c.File.Content[c.Off+n], true
}

// PeekByte читает текущий байт, если есть, иначе возвращает 0.
func (c *Cursor) PeekByte() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт.
// За EOF не двигается.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	if b == '\n' {
		c.Line++
		c.Col = 0
	} else {
		c.Col++
	}
	return b
}

// Advance перемещает курсор на n байт вперед, останавливаясь на EOF.
func (c *Cursor) Advance(n uint32) {
	for range n {
		if c.EOF() {
			return
		}
		c.Bump()
	}
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Bump()
		return true
	}
	return false
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// SliceFrom returns the raw bytes read since the mark.
func (c *Cursor) SliceFrom(m Mark) []byte {
	return c.File.Content[uint32(m):c.Off]
}
